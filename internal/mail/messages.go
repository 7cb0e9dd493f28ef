package mail

import "fmt"

// CodeMessage is the 6-digit verification code mail.
func CodeMessage(code string) (subject, html string) {
	return "Your verification code",
		fmt.Sprintf("<p>Your verification code is %s.</p>", code)
}

// LinkMessage is the clickable email-ownership verification mail.
func LinkMessage(link string) (subject, html string) {
	return "Verify your email",
		fmt.Sprintf(`<p>Click <a href="%s">this link</a> to verify your email address.</p>`, link)
}
