package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

type RouterConfig struct {
	Funnel      *usecase.Funnel
	Health      *HealthHandler
	Location    *time.Location
	CORSOrigins []string
	// Sem log de requisições nos testes.
	Quiet bool
}

func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Funnel)
	boardHandler := NewBoardHandler(cfg.Funnel, cfg.Location)
	leadHandler := NewLeadHandler(cfg.Funnel)
	catalogHandler := NewCatalogHandler(cfg.Funnel)

	r := chi.NewRouter()
	if !cfg.Quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Handle)
	}
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Get("/session", authHandler.Session)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg.Funnel.IsAuthenticated))

		r.Get("/board", boardHandler.Get)
		r.Get("/board/export.xlsx", boardHandler.Export)
		r.Post("/board/drop", boardHandler.Drop)

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", leadHandler.List)
			r.Post("/", leadHandler.Create)
			r.Get("/{id}", leadHandler.Get)
			r.Put("/{id}", leadHandler.Update)
			r.Delete("/{id}", leadHandler.Delete)
			r.Post("/{id}/stage", leadHandler.ChangeStage)
			r.Post("/{id}/notes", leadHandler.AddNote)
			r.Post("/{id}/modules", leadHandler.AttachModule)
			r.Delete("/{id}/modules/{moduleId}", leadHandler.DetachModule)
			r.Post("/{id}/calendar/toggle", leadHandler.ToggleCalendar)
			r.Post("/{id}/calendar/events", leadHandler.ScheduleEvent)
			r.Delete("/{id}/calendar/events/{eventId}", leadHandler.DeleteEvent)
			r.Get("/{id}/templates/{templateId}", leadHandler.RenderTemplate)
			r.Post("/{id}/templates/{templateId}/send", leadHandler.SendTemplate)
		})

		r.Route("/modules", func(r chi.Router) {
			r.Get("/", catalogHandler.ListModules)
			r.Post("/", catalogHandler.CreateModule)
			r.Put("/{id}", catalogHandler.UpdateModule)
			r.Delete("/{id}", catalogHandler.DeleteModule)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCampaigns)
			r.Post("/", catalogHandler.CreateCampaign)
			r.Put("/{id}", catalogHandler.UpdateCampaign)
			r.Delete("/{id}", catalogHandler.DeleteCampaign)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", catalogHandler.ListTemplates)
			r.Post("/", catalogHandler.CreateTemplate)
			r.Put("/{id}", catalogHandler.UpdateTemplate)
			r.Delete("/{id}", catalogHandler.DeleteTemplate)
		})

		r.Route("/stages", func(r chi.Router) {
			r.Get("/", catalogHandler.ListStages)
			r.Post("/", catalogHandler.CreateStage)
			r.Put("/", catalogHandler.SaveStages)
			r.Put("/order", catalogHandler.ReorderStages)
			r.Put("/{id}", catalogHandler.UpdateStage)
			r.Delete("/{id}", catalogHandler.DeleteStage)
		})
	})

	return r
}
