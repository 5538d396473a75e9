package mail

type ReminderEmailData struct {
	LeadName   string
	Company    string
	EventTitle string
	Start      string
	End        string
	Phone      string
	WhatsApp   string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	Dialer   Dialer
}
