package entity

import "errors"

var (
	ErrLeadNotFound          = errors.New("lead não encontrado")
	ErrModuleNotFound        = errors.New("módulo não encontrado")
	ErrCampaignNotFound      = errors.New("campanha não encontrada")
	ErrTemplateNotFound      = errors.New("modelo de comunicação não encontrado")
	ErrStageNotFound         = errors.New("etapa não encontrada")
	ErrEventNotFound         = errors.New("evento não encontrado")
	ErrInvalidCampaignSource = errors.New("origem de campanha inválida")

	// ErrSlotNotFound is returned by slot stores when a key was never written.
	ErrSlotNotFound = errors.New("slot not found")
)
