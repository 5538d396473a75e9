package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// Publisher é o subconjunto de *amqp.Channel usado pelo producer.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type LeadEventProducer struct {
	Ch Publisher
}

func NewProducer(ch Publisher) *LeadEventProducer {
	return &LeadEventProducer{Ch: ch}
}

// PublishLeadEvent usa o tipo do evento (lead.created, lead.stage_changed...)
// como routing key.
func (p *LeadEventProducer) PublishLeadEvent(ctx context.Context, event entity.LeadEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("erro ao converter evento: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,       // ex.funnel
		string(event.Type), // routing key
		false,              // Mandatory
		false,              // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			MessageId:    event.LeadID + ":" + event.OccurredAt.Format("20060102T150405.000000000"),
			Timestamp:    event.OccurredAt,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}
	return nil
}
