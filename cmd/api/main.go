package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-funnel/internal/config"
	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/format"
	"github.com/xavierca1/ligue-funnel/internal/infra/database"
	"github.com/xavierca1/ligue-funnel/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-funnel/internal/infra/integration/kommo"
	"github.com/xavierca1/ligue-funnel/internal/infra/logging"
	"github.com/xavierca1/ligue-funnel/internal/infra/mail"
	"github.com/xavierca1/ligue-funnel/internal/infra/queue"
	"github.com/xavierca1/ligue-funnel/internal/infra/worker"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  Aviso: arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}
	cfg := config.Load()

	logFile := logging.Setup(logging.Options{
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc := format.Location(cfg.DisplayTimezone)

	// 1. Persistência
	var (
		store usecase.SlotStore
		db    *sql.DB
		rdb   *redis.Client
	)
	switch cfg.StorageDriver {
	case "postgres":
		var err error
		db, err = database.NewDBConnection(cfg.DBDriver, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("❌ Erro ao conectar no Postgres: %v", err)
		}
		defer db.Close()

		repo := database.NewSlotRepository(db, cfg.SlotPrefix)
		if err := repo.Migrate(ctx); err != nil {
			log.Fatalf("❌ Erro ao criar tabela de slots: %v", err)
		}
		store = repo
	case "redis":
		var err error
		rdb, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("❌ Erro ao conectar no Redis: %v", err)
		}
		defer rdb.Close()
		store = database.NewRedisStore(rdb, cfg.SlotPrefix)
	case "memory":
		store = database.NewMemoryStore()
	default:
		log.Fatalf("❌ STORAGE_DRIVER desconhecido: %s", cfg.StorageDriver)
	}
	log.Printf("💾 Persistência: %s", cfg.StorageDriver)

	// 2. Catálogo inicial (YAML opcional sobre os valores embutidos)
	defaults := usecase.BuiltinDefaults()
	if cfg.SeedPath != "" {
		seed, err := config.LoadSeed(cfg.SeedPath)
		if err != nil {
			log.Fatalf("❌ Erro ao carregar seed: %v", err)
		}
		defaults = seed.Apply(defaults)
	}

	// 3. Gateways e Adapters
	publishers := usecase.Publishers{middleware.LeadEventMetrics{}}
	crm := kommo.NewClient(cfg.KommoAPIToken, cfg.KommoBaseURL)

	var rabbitConn *amqp091.Connection
	if cfg.AMQPURL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		defer rabbitMQ.Close()
		rabbitConn = rabbitMQ.Conn
		publishers = append(publishers, queue.NewProducer(rabbitMQ.Ch))

		// Canal próprio para o consumidor
		consumerCh, err := rabbitMQ.Conn.Channel()
		if err != nil {
			log.Fatalf("❌ Erro ao abrir canal do worker: %v", err)
		}
		defer consumerCh.Close()

		w := queue.NewWorker(consumerCh, crm, entity.StageID(cfg.WonStageID))
		w.OnError = middleware.RecordIntegrationError
		go func() {
			if err := w.Start(ctx, queue.QueueName); err != nil {
				log.Printf("❌ [WORKER] %v", err)
			}
		}()
	} else {
		log.Println("⚠️ AMQP_URL vazio: eventos de lead não serão publicados")
	}

	opts := []usecase.Option{usecase.WithPublisher(publishers)}

	var mailSender *mail.EmailSender
	if cfg.MailEnabled() {
		mailSender = mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom)
		opts = append(opts, usecase.WithEmailService(mailSender))
	}

	// 4. Funil
	funnel := usecase.NewFunnel(ctx, store, defaults, opts...)

	// 5. Lembretes de agenda
	if mailSender != nil && cfg.ReminderTo != "" {
		reminders := worker.NewEventReminderWorker(funnel, mailSender, cfg.ReminderTo, cfg.ReminderWindow, loc)
		reminders.Observe = func(status string) { middleware.RecordMail("reminder", status) }
		if err := reminders.Start(ctx, cfg.ReminderSchedule); err != nil {
			log.Fatalf("❌ REMINDER_SCHEDULE inválido: %v", err)
		}
		defer reminders.Stop()
	}

	// 6. Router
	health := handlers.NewHealthHandler(cfg.StorageDriver, db, rdb, rabbitConn)
	health.MailReady = cfg.MailEnabled()
	health.CRMReady = crm.Configured()

	router := handlers.NewRouter(handlers.RouterConfig{
		Funnel:      funnel,
		Health:      health,
		Location:    loc,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🔥 Funil de vendas rodando na porta %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Servidor: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("⚠️ Encerrando...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Erro no shutdown: %v", err)
	}
}
