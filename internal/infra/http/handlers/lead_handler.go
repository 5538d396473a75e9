package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

type LeadHandler struct {
	Funnel *usecase.Funnel
}

func NewLeadHandler(f *usecase.Funnel) *LeadHandler {
	return &LeadHandler{Funnel: f}
}

type ChangeStageRequest struct {
	StageID entity.StageID `json:"stage_id"`
}

type NoteRequest struct {
	Text string `json:"text"`
}

type AttachModuleRequest struct {
	ModuleID string           `json:"module_id"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type RenderedTemplateResponse struct {
	TemplateID string `json:"template_id"`
	Text       string `json:"text"`
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Funnel.Leads())
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Funnel.Lead(chi.URLParam(r, "id"))
	respond(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Funnel.CreateLead(r.Context(), input)
	respond(w, http.StatusCreated, lead, err)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Funnel.UpdateLead(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, http.StatusOK, lead, err)
}

// DELETE /leads/{id}?confirm=true
func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnel.DeleteLead(r.Context(), chi.URLParam(r, "id"), queryConfirmer(r)); err != nil {
		writeUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LeadHandler) ChangeStage(w http.ResponseWriter, r *http.Request) {
	var req ChangeStageRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lead, err := h.Funnel.ChangeStage(r.Context(), chi.URLParam(r, "id"), req.StageID)
	respond(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lead, err := h.Funnel.AddNote(r.Context(), chi.URLParam(r, "id"), req.Text)
	respond(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) AttachModule(w http.ResponseWriter, r *http.Request) {
	var req AttachModuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	lead, err := h.Funnel.AttachModule(r.Context(), chi.URLParam(r, "id"), req.ModuleID, req.Price)
	respond(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) DetachModule(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Funnel.DetachModule(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "moduleId"))
	respond(w, http.StatusOK, lead, err)
}

// --- Agenda ---

func (h *LeadHandler) ToggleCalendar(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Funnel.ToggleCalendarLink(r.Context(), chi.URLParam(r, "id"))
	respond(w, http.StatusOK, lead, err)
}

func (h *LeadHandler) ScheduleEvent(w http.ResponseWriter, r *http.Request) {
	var input usecase.EventInput
	if !decodeJSON(w, r, &input) {
		return
	}
	lead, err := h.Funnel.ScheduleEvent(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, http.StatusCreated, lead, err)
}

func (h *LeadHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Funnel.DeleteEvent(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eventId"))
	respond(w, http.StatusOK, lead, err)
}

// --- Modelos de comunicação ---

func (h *LeadHandler) RenderTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateId")
	text, err := h.Funnel.RenderTemplate(chi.URLParam(r, "id"), templateID)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RenderedTemplateResponse{TemplateID: templateID, Text: text})
}

func (h *LeadHandler) SendTemplate(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Funnel.SendTemplate(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "templateId"))
	switch {
	case err == nil:
		middleware.RecordMail("template", "sent")
	case usecase.ErrorCode(err) == usecase.CodeMailFailed:
		middleware.RecordMail("template", "failed")
	}
	respond(w, http.StatusOK, lead, err)
}
