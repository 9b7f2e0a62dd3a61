package mailer

import "fmt"

// EmailJob is the JSON payload put on the RabbitMQ queue for best-effort
// notification email (welcome mail and the like). Reset-password mail is
// never queued; it must fail loudly so the token can be cleared.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// WelcomeJob builds the registration notification.
func WelcomeJob(to, name string) EmailJob {
	return EmailJob{
		To:      to,
		Subject: "Welcome to CampDirect",
		Text:    fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now browse bootcamps, courses and reviews.\n", name),
	}
}

// ResetPasswordBody is the text for the password reset mail. The reset URL
// embeds the plain token; only its hash is stored server-side.
func ResetPasswordBody(resetURL string) string {
	return fmt.Sprintf("This email is sent with respect to the request made by you to reset your password. To do so, make a PUT request to %s within the span of 10 minutes.", resetURL)
}
