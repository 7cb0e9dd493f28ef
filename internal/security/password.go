package security

import "golang.org/x/crypto/bcrypt"

// bcryptCost applies to both local-account passwords and mailed
// verification codes (see code.go).
const bcryptCost = 12

// HashPassword prepares a local-account password for storage.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcryptCost)
	return string(b), err
}

// CheckPassword reports whether pw matches the stored hash.
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
