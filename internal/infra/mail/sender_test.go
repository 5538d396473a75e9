package mail

import (
	"bytes"
	"errors"
	"mime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *captureDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func render(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestSend(t *testing.T) {
	d := &captureDialer{}
	s := NewEmailSender("smtp.example.com", 587, "user", "pass", "funil@ligue.com")
	s.Dialer = d

	require.NoError(t, s.Send("ana@tech.com", "Follow-up", "Oi Ana, tudo bem?"))

	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"ana@tech.com"}, d.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"funil@ligue.com"}, d.sent[0].GetHeader("From"))
	assert.Contains(t, render(t, d.sent[0]), "Oi Ana, tudo bem?")
}

func TestSend_Error(t *testing.T) {
	s := NewEmailSender("smtp.example.com", 587, "", "", "x@y.com")
	s.Dialer = &captureDialer{err: errors.New("535 auth failed")}

	err := s.Send("a@b.com", "s", "b")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "535")
}

func TestSendReminder(t *testing.T) {
	d := &captureDialer{}
	s := NewEmailSender("smtp.example.com", 587, "", "", "funil@ligue.com")
	s.Dialer = d

	err := s.SendReminder("vendas@ligue.com", ReminderEmailData{
		LeadName:   "Bruno Costa",
		Company:    "Inova Corp",
		EventTitle: "Reunião de Apresentação",
		Start:      "10/11/2023, 11:00",
		End:        "10/11/2023, 12:00",
		WhatsApp:   "https://wa.me/21912345678",
	})

	require.NoError(t, err)
	require.Len(t, d.sent, 1)
	subject := d.sent[0].GetHeader("Subject")
	require.Len(t, subject, 1)
	decoded, err := new(mime.WordDecoder).DecodeHeader(subject[0])
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(decoded, "Lembrete: Reunião de Apresentação"), decoded)

	raw := render(t, d.sent[0])
	assert.Contains(t, raw, "Bruno Costa (Inova Corp)")
	assert.Contains(t, raw, "https://wa.me/21912345678")
	assert.NotContains(t, raw, "Telefone:")
}
