package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// RenderTemplate returns the template body filled in for the lead.
func (f *Funnel) RenderTemplate(leadID, templateID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOfLead(leadID)
	if i < 0 {
		return "", notFound(entity.ErrLeadNotFound, leadID)
	}
	t, ok := entity.FindTemplate(f.state.Templates, templateID)
	if !ok {
		return "", notFound(entity.ErrTemplateNotFound, templateID)
	}
	return t.Render(f.state.Leads[i]), nil
}

// SendTemplate mails the rendered template to the lead and records a note.
func (f *Funnel) SendTemplate(ctx context.Context, leadID, templateID string) (entity.Lead, error) {
	if f.mailer == nil {
		return entity.Lead{}, &DomainError{
			Code:    CodeMailDisabled,
			Message: "envio de e-mail não configurado",
		}
	}

	lead, err := f.Lead(leadID)
	if err != nil {
		return entity.Lead{}, err
	}
	tpl, ok := entity.FindTemplate(f.Templates(), templateID)
	if !ok {
		return entity.Lead{}, notFound(entity.ErrTemplateNotFound, templateID)
	}

	if err := f.mailer.Send(lead.Email, tpl.Title, tpl.Render(lead)); err != nil {
		log.Printf("[MAIL] falha ao enviar modelo %s para %s: %v", templateID, lead.Email, err)
		return entity.Lead{}, &TechnicalError{
			Code:    CodeMailFailed,
			Message: "falha ao enviar e-mail: " + err.Error(),
			Err:     err,
		}
	}

	return f.AddNote(ctx, leadID, fmt.Sprintf("Modelo '%s' enviado por e-mail para %s.", tpl.Title, lead.Email))
}
