package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

// Dialer é satisfeito por *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`Lembrete de compromisso

{{.EventTitle}}
Lead: {{.LeadName}}{{if .Company}} ({{.Company}}){{end}}
Início: {{.Start}}
Término: {{.End}}
{{if .Phone}}
Telefone: {{.Phone}}{{end}}{{if .WhatsApp}}
WhatsApp: {{.WhatsApp}}{{end}}
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		Dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// Send envia um texto simples. É o que o funil usa para os modelos de
// comunicação.
func (s *EmailSender) Send(to, subject, body string) error {
	m := s.newMessage(to, subject)
	m.SetBody("text/plain", body)

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) SendReminder(to string, data ReminderEmailData) error {
	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	subject := fmt.Sprintf("Lembrete: %s às %s", data.EventTitle, data.Start)
	return s.Send(to, subject, body.String())
}

func (s *EmailSender) newMessage(to, subject string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	return m
}
