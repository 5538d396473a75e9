package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

func TestWriteBoard(t *testing.T) {
	d := usecase.BuiltinDefaults()
	board := usecase.BuildBoard(d.Leads, d.Stages, usecase.DateRange{})

	var buf bytes.Buffer
	require.NoError(t, WriteBoard(&buf, board, d.Campaigns, time.UTC))

	xl, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows(LeadsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 8)
	assert.Equal(t, "Etapa", rows[0][0])
	assert.Equal(t, []string{"Novo Lead", "Ana Silva", "Tech Solutions Ltda."}, rows[1][:3])
	assert.Equal(t, "Google Ads Q4", rows[1][6])
	assert.Equal(t, "26/10/2023, 10:00", rows[1][9])

	summary, err := xl.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 7)
	assert.Equal(t, []string{"Novo Lead", "2", "R$\u00a080.000,00"}, summary[1])
}
