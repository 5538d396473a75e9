package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/format"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

const (
	LeadsSheet   = "Leads"
	SummarySheet = "Resumo"
)

var leadHeader = []interface{}{
	"Etapa", "Nome", "Empresa", "Ramo", "E-mail", "Telefone", "Campanha", "Módulos", "Valor Total", "Criado em", "Último contato",
}

var summaryHeader = []interface{}{"Etapa", "Leads", "Valor Total"}

// WriteBoard writes the board as a workbook: one row per lead in column
// order, plus a per-stage summary sheet.
func WriteBoard(w io.Writer, board usecase.Board, campaigns []entity.Campaign, loc *time.Location) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName("Sheet1", LeadsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := xl.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := xl.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := xl.SetSheetRow(LeadsSheet, "A1", &leadHeader); err != nil {
		return err
	}
	_ = xl.SetRowStyle(LeadsSheet, 1, 1, bold)

	row := 2
	for _, col := range board.Columns {
		for _, l := range col.Leads {
			record := []interface{}{
				col.Stage.Title,
				l.Name,
				l.Company,
				l.Sector,
				l.Email,
				l.Phone,
				campaignName(campaigns, l.CampaignID),
				len(l.Modules),
				l.TotalValue.InexactFloat64(),
				createdAt(l, loc),
				l.LastContact,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := xl.SetSheetRow(LeadsSheet, cell, &record); err != nil {
				return err
			}
			row++
		}
	}

	if err := xl.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	_ = xl.SetRowStyle(SummarySheet, 1, 1, bold)
	for i, col := range board.Columns {
		record := []interface{}{col.Stage.Title, len(col.Leads), format.Currency(col.Total)}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := xl.SetSheetRow(SummarySheet, cell, &record); err != nil {
			return err
		}
	}

	if _, err := xl.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func campaignName(campaigns []entity.Campaign, id *string) string {
	if id == nil {
		return ""
	}
	c, ok := entity.FindCampaign(campaigns, *id)
	if !ok {
		return ""
	}
	return c.Name
}

func createdAt(l entity.Lead, loc *time.Location) string {
	h, ok := l.CreationEntry()
	if !ok {
		return ""
	}
	return format.DateTime(h.Date, loc)
}
