package entity

import "strings"

const (
	PlaceholderLeadName    = "{{lead.name}}"
	PlaceholderLeadCompany = "{{lead.company}}"

	missingLeadName    = "[Nome do Lead]"
	missingLeadCompany = "[Nome da Empresa]"
)

type CommunicationTemplate struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Render substitutes the lead placeholders in the body.
func (t CommunicationTemplate) Render(l Lead) string {
	name := l.Name
	if name == "" {
		name = missingLeadName
	}
	company := l.Company
	if company == "" {
		company = missingLeadCompany
	}
	r := strings.NewReplacer(
		PlaceholderLeadName, name,
		PlaceholderLeadCompany, company,
	)
	return r.Replace(t.Body)
}

func FindTemplate(templates []CommunicationTemplate, id string) (CommunicationTemplate, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return CommunicationTemplate{}, false
}
