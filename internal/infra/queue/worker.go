package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/infra/integration/kommo"
)

// CRMClient recebe os leads que chegaram à etapa de ganho.
type CRMClient interface {
	CreateLead(ctx context.Context, input kommo.CreateLeadInput) (int, error)
}

// Consumer é o subconjunto de *amqp.Channel usado pelo worker.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

var errMalformed = errors.New("payload malformado")

type Worker struct {
	Channel    Consumer
	CRM        CRMClient
	WonStageID entity.StageID
	OnError    func(service string)
}

func NewWorker(ch Consumer, crm CRMClient, wonStage entity.StageID) *Worker {
	return &Worker{
		Channel:    ch,
		CRM:        crm,
		WonStageID: wonStage,
	}
}

// Start consome a fila até ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	err := w.Process(ctx, d.Body)
	switch {
	case err == nil:
		d.Ack(false)
	case errors.Is(err, errMalformed):
		log.Printf("❌ [WORKER] JSON Inválido: %s", err)
		// Mensagem podre. Rejeita sem requeue para não travar a fila.
		d.Nack(false, false)
	default:
		log.Printf("❌ [WORKER] Erro na integração: %s", err)
		if w.OnError != nil {
			w.OnError("kommo")
		}
		// Primeira falha volta para a fila; na segunda vai para a DLQ.
		d.Nack(false, !d.Redelivered)
	}
}

// Process trata um evento. Só leads que entraram na etapa de ganho vão
// para o CRM; o resto é confirmado sem ação.
func (w *Worker) Process(ctx context.Context, body []byte) error {
	var event entity.LeadEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}

	if event.Type != entity.LeadStageChanged || event.ToStage != w.WonStageID {
		return nil
	}

	log.Printf("⚙️ [WORKER] Lead %s ganho, enviando para o Kommo", event.LeadID)
	id, err := w.CRM.CreateLead(ctx, kommo.CreateLeadInput{
		LeadID:  event.LeadID,
		Name:    event.Name,
		Company: event.Company,
		Email:   event.Email,
		Phone:   event.Phone,
		Price:   event.TotalValue,
	})
	if errors.Is(err, kommo.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Printf("✅ [WORKER] Lead %s sincronizado (Kommo #%d)", event.LeadID, id)
	return nil
}
