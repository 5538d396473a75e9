package entity

import "regexp"

var nonDigits = regexp.MustCompile(`\D`)

// PhoneDigits strips every non-digit character.
func PhoneDigits(phone string) string {
	return nonDigits.ReplaceAllString(phone, "")
}

// TelLink returns "" when the phone has no digits.
func (l Lead) TelLink() string {
	d := PhoneDigits(l.Phone)
	if d == "" {
		return ""
	}
	return "tel:" + d
}

func (l Lead) WhatsAppLink() string {
	d := PhoneDigits(l.Phone)
	if d == "" {
		return ""
	}
	return "https://wa.me/" + d
}
