package mailer

import "fmt"

// Bodies for the transactional emails. Links carry a signed token that the
// matching confirmation endpoint verifies on the follow-up request.

func ConfirmationBody(name, confirmURL string) string {
	return fmt.Sprintf(`<h3>Hi, %s! Welcome to Lifts For Life</h3>
<p>Click <a href="%s" target="_blank">here</a> to confirm your email!</p>`, name, confirmURL)
}

func EmailChangeBody(name, confirmURL string) string {
	return fmt.Sprintf(`<h3>Hi, %s! You have decided to change your email</h3>
<p>Click <a href="%s" target="_blank">here</a> to confirm your email!</p>`, name, confirmURL)
}

func PasswordResetBody(name, resetURL string) string {
	return fmt.Sprintf(`<h3>Hi, %s!</h3>
<p>Click <a href="%s">here</a> to reset your password!</p>`, name, resetURL)
}

func OrderPlacedBody(name string) string {
	return fmt.Sprintf(`<h3>Hi, %s! We have placed your order</h3>`, name)
}
