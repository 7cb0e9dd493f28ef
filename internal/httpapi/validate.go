package httpapi

import (
	"net/mail"
	"regexp"
)

var (
	localIDRe  = regexp.MustCompile(`^[a-z0-9]{5,20}$`)
	nickNameRe = regexp.MustCompile(`^\S{2,12}$`)
)

func validLocalID(id string) bool { return localIDRe.MatchString(id) }

func validNickName(n string) bool { return nickNameRe.MatchString(n) }

func validEmail(e string) bool {
	if e == "" {
		return false
	}
	_, err := mail.ParseAddress(e)
	return err == nil
}

// validPassword enforces the local-account policy: 8-20 alphanumeric
// characters with at least one letter and one digit.
func validPassword(p string) bool {
	if len(p) < 8 || len(p) > 20 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}
