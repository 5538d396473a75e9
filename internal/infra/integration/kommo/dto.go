package kommo

import "github.com/shopspring/decimal"

// CreateLeadInput é o lead do funil que será criado no Kommo.
type CreateLeadInput struct {
	LeadID  string // id do lead no funil, vai como tag
	Name    string
	Company string
	Email   string
	Phone   string // Ex: "(11) 98765-4321", só os dígitos são enviados
	Price   decimal.Decimal
}

type ContactResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type embeddedContacts struct {
	Embedded struct {
		Contacts []ContactResponse `json:"contacts"`
	} `json:"_embedded"`
}

type embeddedLeads struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
	} `json:"_embedded"`
}
