package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

// CatalogHandler atende módulos, campanhas, modelos e etapas.
type CatalogHandler struct {
	Funnel *usecase.Funnel
}

func NewCatalogHandler(f *usecase.Funnel) *CatalogHandler {
	return &CatalogHandler{Funnel: f}
}

type StageOrderRequest struct {
	IDs []entity.StageID `json:"ids"`
}

type StagesResponse struct {
	Stages []entity.FunnelStage `json:"stages"`
	Guard  *usecase.StageGuard  `json:"guard,omitempty"`
}

// --- Módulos ---

func (h *CatalogHandler) ListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Funnel.Modules())
}

func (h *CatalogHandler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var input usecase.ModuleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	m, err := h.Funnel.AddModule(r.Context(), input)
	respond(w, http.StatusCreated, m, err)
}

func (h *CatalogHandler) UpdateModule(w http.ResponseWriter, r *http.Request) {
	var input usecase.ModuleInput
	if !decodeJSON(w, r, &input) {
		return
	}
	m, err := h.Funnel.UpdateModule(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, http.StatusOK, m, err)
}

// DELETE /modules/{id}?confirm=true remove o módulo de todos os leads.
func (h *CatalogHandler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnel.DeleteModule(r.Context(), chi.URLParam(r, "id"), queryConfirmer(r)); err != nil {
		writeUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Campanhas ---

func (h *CatalogHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Funnel.Campaigns())
}

func (h *CatalogHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input usecase.CampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.Funnel.AddCampaign(r.Context(), input)
	respond(w, http.StatusCreated, c, err)
}

func (h *CatalogHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var input usecase.CampaignInput
	if !decodeJSON(w, r, &input) {
		return
	}
	c, err := h.Funnel.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, http.StatusOK, c, err)
}

func (h *CatalogHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnel.DeleteCampaign(r.Context(), chi.URLParam(r, "id"), queryConfirmer(r)); err != nil {
		writeUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Modelos ---

func (h *CatalogHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Funnel.Templates())
}

func (h *CatalogHandler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input usecase.TemplateInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.Funnel.AddTemplate(r.Context(), input)
	respond(w, http.StatusCreated, t, err)
}

func (h *CatalogHandler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var input usecase.TemplateInput
	if !decodeJSON(w, r, &input) {
		return
	}
	t, err := h.Funnel.UpdateTemplate(r.Context(), chi.URLParam(r, "id"), input)
	respond(w, http.StatusOK, t, err)
}

func (h *CatalogHandler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Funnel.DeleteTemplate(r.Context(), chi.URLParam(r, "id"), queryConfirmer(r)); err != nil {
		writeUsecaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Etapas ---

func (h *CatalogHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StagesResponse{Stages: h.Funnel.Stages()})
}

func (h *CatalogHandler) CreateStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.StageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	s, err := h.Funnel.AddStage(r.Context(), input)
	respond(w, http.StatusCreated, s, err)
}

func (h *CatalogHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	var input usecase.StageInput
	if !decodeJSON(w, r, &input) {
		return
	}
	s, err := h.Funnel.UpdateStage(r.Context(), entity.StageID(chi.URLParam(r, "id")), input)
	respond(w, http.StatusOK, s, err)
}

// DeleteStage recusa com 409 quando ainda há leads na etapa.
func (h *CatalogHandler) DeleteStage(w http.ResponseWriter, r *http.Request) {
	guard, err := h.Funnel.DeleteStage(r.Context(), entity.StageID(chi.URLParam(r, "id")))
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	if !guard.Allowed {
		writeJSON(w, http.StatusConflict, StagesResponse{Stages: h.Funnel.Stages(), Guard: &guard})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PUT /stages/order
func (h *CatalogHandler) ReorderStages(w http.ResponseWriter, r *http.Request) {
	var req StageOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	stages, err := h.Funnel.ReorderStages(r.Context(), req.IDs)
	respond(w, http.StatusOK, StagesResponse{Stages: stages}, err)
}

// PUT /stages salva a lista inteira vinda do editor de etapas.
func (h *CatalogHandler) SaveStages(w http.ResponseWriter, r *http.Request) {
	var edited []entity.FunnelStage
	if !decodeJSON(w, r, &edited) {
		return
	}
	stages, guard, err := h.Funnel.SaveStages(r.Context(), edited)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	if !guard.Allowed {
		writeJSON(w, http.StatusConflict, StagesResponse{Stages: stages, Guard: &guard})
		return
	}
	writeJSON(w, http.StatusOK, StagesResponse{Stages: stages})
}
