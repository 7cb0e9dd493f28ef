package queue

// Routing keys on the topic exchange.
const (
	KeyMailRequested  = "mail.requested"
	KeyUserRegistered = "user.registered"
)

// MailRequested asks the notifier worker to deliver one message.
type MailRequested struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// UserRegistered is emitted after every successful signup.
type UserRegistered struct {
	UserID string `json:"userId"`
	Method string `json:"method"`
	Email  string `json:"email"`
}
