package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/format"
	"github.com/xavierca1/ligue-funnel/internal/infra/export"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BoardHandler struct {
	Funnel   *usecase.Funnel
	Location *time.Location
}

func NewBoardHandler(f *usecase.Funnel, loc *time.Location) *BoardHandler {
	return &BoardHandler{Funnel: f, Location: loc}
}

type CampaignBadge struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type LeadCard struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Company      string          `json:"company"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	TelLink      string          `json:"tel_link,omitempty"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
	TotalValue   decimal.Decimal `json:"total_value"`
	Total        string          `json:"total"`
	LastContact  string          `json:"last_contact,omitempty"`
	Campaign     *CampaignBadge  `json:"campaign,omitempty"`
	Modules      []string        `json:"modules"`
}

type ColumnResponse struct {
	Stage      entity.FunnelStage `json:"stage"`
	Count      int                `json:"count"`
	TotalValue decimal.Decimal    `json:"total_value"`
	Total      string             `json:"total"`
	Leads      []LeadCard         `json:"leads"`
}

type BoardResponse struct {
	Start   string           `json:"start,omitempty"`
	End     string           `json:"end,omitempty"`
	Columns []ColumnResponse `json:"columns"`
}

type DropRequest struct {
	LeadID  string         `json:"lead_id"`
	StageID entity.StageID `json:"stage_id"`
}

type DropResponse struct {
	Moved bool         `json:"moved"`
	Lead  *entity.Lead `json:"lead,omitempty"`
}

// GET /board?start=AAAA-MM-DD&end=AAAA-MM-DD
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}
	campaigns := h.Funnel.Campaigns()

	resp := BoardResponse{
		Start:   r.URL.Query().Get("start"),
		End:     r.URL.Query().Get("end"),
		Columns: make([]ColumnResponse, 0, len(board.Columns)),
	}
	for _, col := range board.Columns {
		c := ColumnResponse{
			Stage:      col.Stage,
			Count:      len(col.Leads),
			TotalValue: col.Total,
			Total:      format.Currency(col.Total),
			Leads:      make([]LeadCard, 0, len(col.Leads)),
		}
		for _, l := range col.Leads {
			c.Leads = append(c.Leads, leadCard(l, campaigns))
		}
		resp.Columns = append(resp.Columns, c)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GET /board/export.xlsx
func (h *BoardHandler) Export(w http.ResponseWriter, r *http.Request) {
	board, ok := h.board(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBoard(&buf, board, h.Funnel.Campaigns(), h.Location); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "EXPORT_FAILED", err.Error())
		return
	}

	name := fmt.Sprintf("funil-%s.xlsx", time.Now().In(h.Location).Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// POST /board/drop
func (h *BoardHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req DropRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	lead, moved, err := h.Funnel.Drop(r.Context(), usecase.PickUp(req.LeadID), req.StageID)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}
	if !moved {
		writeJSON(w, http.StatusOK, DropResponse{Moved: false})
		return
	}
	writeJSON(w, http.StatusOK, DropResponse{Moved: true, Lead: &lead})
}

func (h *BoardHandler) board(w http.ResponseWriter, r *http.Request) (usecase.Board, bool) {
	q := r.URL.Query()
	rng, err := usecase.NewDateRange(q.Get("start"), q.Get("end"))
	if err != nil {
		writeUsecaseError(w, err)
		return usecase.Board{}, false
	}
	return h.Funnel.Board(rng), true
}

func leadCard(l entity.Lead, campaigns []entity.Campaign) LeadCard {
	card := LeadCard{
		ID:           l.ID,
		Name:         l.Name,
		Company:      l.Company,
		Email:        l.Email,
		Phone:        l.Phone,
		TelLink:      l.TelLink(),
		WhatsAppLink: l.WhatsAppLink(),
		TotalValue:   l.TotalValue,
		Total:        format.Currency(l.TotalValue),
		LastContact:  l.LastContact,
		Modules:      make([]string, 0, len(l.Modules)),
	}
	if l.CampaignID != nil {
		if c, ok := entity.FindCampaign(campaigns, *l.CampaignID); ok {
			card.Campaign = &CampaignBadge{Name: c.Name, Color: c.Color}
		}
	}
	for _, m := range l.Modules {
		card.Modules = append(card.Modules, m.Name)
	}
	return card
}
