package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/format"
	"github.com/xavierca1/ligue-funnel/internal/infra/mail"
)

// LeadSource é satisfeito por *usecase.Funnel.
type LeadSource interface {
	Leads() []entity.Lead
}

type ReminderSender interface {
	SendReminder(to string, data mail.ReminderEmailData) error
}

// EventReminderWorker manda um e-mail para cada evento de agenda de um lead
// vinculado que começa dentro da janela. Cada evento é lembrado uma vez por
// processo.
type EventReminderWorker struct {
	leads  LeadSource
	sender ReminderSender
	to     string
	window time.Duration
	loc    *time.Location
	now    func() time.Time

	// Observe recebe "sent" ou "failed" a cada tentativa.
	Observe func(status string)

	mu   sync.Mutex
	sent map[string]bool
	cron *cron.Cron
}

func NewEventReminderWorker(leads LeadSource, sender ReminderSender, to string, window time.Duration, loc *time.Location) *EventReminderWorker {
	return &EventReminderWorker{
		leads:  leads,
		sender: sender,
		to:     to,
		window: window,
		loc:    loc,
		now:    time.Now,
		sent:   make(map[string]bool),
	}
}

// Start agenda RunOnce com uma expressão cron de 5 campos.
func (w *EventReminderWorker) Start(ctx context.Context, schedule string) error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(schedule, func() { w.RunOnce(ctx) }); err != nil {
		return err
	}
	w.cron.Start()
	log.Printf("🕒 Reminder Worker iniciado (%s, janela %s)", schedule, w.window)
	return nil
}

// Stop espera o job em andamento terminar.
func (w *EventReminderWorker) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
	log.Println("⚠️ Reminder Worker encerrado")
}

// RunOnce envia os lembretes pendentes e devolve quantos foram enviados.
func (w *EventReminderWorker) RunOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	now := w.now()
	count := 0

	for _, lead := range w.leads.Leads() {
		if !lead.CalendarLinked {
			continue
		}
		for _, ev := range lead.CalendarEvents {
			if !ev.StartsWithin(now, w.window) {
				continue
			}
			key := lead.ID + "/" + ev.ID
			if w.alreadySent(key) {
				continue
			}

			err := w.sender.SendReminder(w.to, mail.ReminderEmailData{
				LeadName:   lead.Name,
				Company:    lead.Company,
				EventTitle: ev.Title,
				Start:      format.DateTime(ev.Start, w.loc),
				End:        format.DateTime(ev.End, w.loc),
				Phone:      lead.TelLink(),
				WhatsApp:   lead.WhatsAppLink(),
			})
			if err != nil {
				log.Printf("❌ Erro ao enviar lembrete do evento %s (lead %s): %v", ev.ID, lead.ID, err)
				w.observe("failed")
				continue
			}
			w.markSent(key)
			w.observe("sent")
			count++
		}
	}

	if count > 0 {
		log.Printf("📧 %d lembrete(s) de agenda enviado(s)", count)
	}
	return count
}

func (w *EventReminderWorker) alreadySent(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sent[key]
}

func (w *EventReminderWorker) markSent(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent[key] = true
}

func (w *EventReminderWorker) observe(status string) {
	if w.Observe != nil {
		w.Observe(status)
	}
}
