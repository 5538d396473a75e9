package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// SlotStore persists one serialized value per logical key. Load returns
// entity.ErrSlotNotFound for a key that was never saved.
type SlotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

type EventPublisher interface {
	PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error
}

// Publishers fans an event out to every publisher and joins their errors.
type Publishers []EventPublisher

func (ps Publishers) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	var errs []error
	for _, p := range ps {
		if err := p.PublishLeadEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type EmailService interface {
	Send(to, subject, body string) error
}

// Confirmer is asked before any destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

var (
	AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
	NeverConfirm  Confirmer = ConfirmFunc(func(string) bool { return false })
)

const (
	PromptDeleteLead     = "Tem certeza de que deseja excluir este lead?"
	PromptDeleteCampaign = "Excluir esta campanha irá desvinculá-la de todos os leads associados. Deseja continuar?"
	PromptDeleteModule   = "Atenção! Excluir um módulo o removerá de TODOS os leads existentes. Deseja continuar?"
	PromptDeleteTemplate = "Tem certeza de que deseja excluir este modelo de comunicação?"
)

func confirmed(c Confirmer, prompt string) bool {
	return c != nil && c.Confirm(prompt)
}
