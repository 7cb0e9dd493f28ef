package security

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// NewVerificationCode draws a 6-digit numeric code from crypto/rand.
func NewVerificationCode() (string, error) {
	for {
		var b [4]byte
		if _, err := rand.Read(b[:3]); err != nil {
			return "", err
		}
		s := strconv.FormatUint(uint64(binary.BigEndian.Uint32(b[:])>>8), 10)
		if len(s) >= 6 {
			return s[:6], nil
		}
		// 3 random bytes occasionally decode to fewer than 6 digits; redraw.
	}
}

// HashCode stores only a one-way hash of the code on the user record.
func HashCode(code string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(code), bcryptCost)
	return string(b), err
}

func CheckCode(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
