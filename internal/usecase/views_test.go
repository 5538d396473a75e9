package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

func leadCreatedAt(id string, stage entity.StageID, at time.Time, value int64) entity.Lead {
	return entity.Lead{
		ID:         id,
		StageID:    stage,
		TotalValue: decimal.NewFromInt(value),
		History: []entity.HistoryEntry{
			entity.NewHistoryEntry(id+"-h", at, entity.HistoryCreation, usecase.HistoryCreatedContent),
		},
	}
}

func TestNewDateRange(t *testing.T) {
	r, err := usecase.NewDateRange("2023-10-01", "2023-10-31")
	require.NoError(t, err)
	assert.True(t, r.Active())
	assert.Equal(t, time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), *r.Start)
	assert.Equal(t, time.Date(2023, 10, 31, 23, 59, 59, 0, time.UTC), *r.End)

	r, err = usecase.NewDateRange("", " ")
	require.NoError(t, err)
	assert.False(t, r.Active())

	_, err = usecase.NewDateRange("01/10/2023", "")
	assert.Equal(t, usecase.CodeInvalidFilter, usecase.ErrorCode(err))
}

func TestFilterByCreationDate_DayBoundaries(t *testing.T) {
	inside := leadCreatedAt("a", "new-lead", time.Date(2023, 10, 26, 10, 0, 0, 0, time.UTC), 0)
	after := leadCreatedAt("b", "new-lead", time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), 0)
	lastSecond := leadCreatedAt("c", "new-lead", time.Date(2023, 10, 31, 23, 59, 59, 0, time.UTC), 0)
	firstSecond := leadCreatedAt("d", "new-lead", time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC), 0)
	noCreation := entity.Lead{ID: "e", StageID: "new-lead"}

	r, err := usecase.NewDateRange("2023-10-01", "2023-10-31")
	require.NoError(t, err)

	got := usecase.FilterByCreationDate([]entity.Lead{inside, after, lastSecond, firstSecond, noCreation}, r)

	ids := make([]string, 0, len(got))
	for _, l := range got {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestFilterByCreationDate_OpenBounds(t *testing.T) {
	early := leadCreatedAt("a", "new-lead", time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	late := leadCreatedAt("b", "new-lead", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	noCreation := entity.Lead{ID: "c"}
	leads := []entity.Lead{early, late, noCreation}

	all := usecase.FilterByCreationDate(leads, usecase.DateRange{})
	assert.Len(t, all, 3)

	r, err := usecase.NewDateRange("2023-06-01", "")
	require.NoError(t, err)
	got := usecase.FilterByCreationDate(leads, r)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	r, err = usecase.NewDateRange("", "2023-06-01")
	require.NoError(t, err)
	got = usecase.FilterByCreationDate(leads, r)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestGroupByStage_Partition(t *testing.T) {
	leads := usecase.BuiltinDefaults().Leads
	leads = append(leads, entity.Lead{ID: "orphan", StageID: "archived"})
	stages := usecase.DefaultStages

	groups := usecase.GroupByStage(leads, stages)

	assert.Len(t, groups, len(stages))
	seen := map[string]int{}
	total := 0
	for stageID, g := range groups {
		for _, l := range g {
			assert.Equal(t, stageID, l.StageID)
			seen[l.ID]++
			total++
		}
	}
	assert.Equal(t, 7, total)
	assert.NotContains(t, seen, "orphan")
	for id, n := range seen {
		assert.Equal(t, 1, n, id)
	}

	require.Len(t, groups["new-lead"], 2)
	assert.Equal(t, "lead-1", groups["new-lead"][0].ID)
	assert.Equal(t, "lead-7", groups["new-lead"][1].ID)
	assert.NotNil(t, groups["won"])
}

func TestStageTotalValue(t *testing.T) {
	leads := []entity.Lead{
		leadCreatedAt("a", "won", testNow, 15000),
		leadCreatedAt("b", "won", testNow, 2500),
	}

	assert.Equal(t, "17500.00", usecase.StageTotalValue(leads).StringFixed(2))
	assert.True(t, usecase.StageTotalValue(nil).IsZero())
}

func TestBuildBoard_Deterministic(t *testing.T) {
	leads := usecase.BuiltinDefaults().Leads
	r, err := usecase.NewDateRange("2023-10-01", "2023-10-31")
	require.NoError(t, err)

	first := usecase.BuildBoard(leads, usecase.DefaultStages, r)
	second := usecase.BuildBoard(leads, usecase.DefaultStages, r)

	assert.Equal(t, first, second)
	require.Len(t, first.Columns, 6)
	for i, c := range first.Columns {
		assert.Equal(t, usecase.DefaultStages[i].ID, c.Stage.ID)
		assert.True(t, c.Total.Equal(usecase.StageTotalValue(c.Leads)))
	}
	// lead-7 was created in November
	require.Len(t, first.Columns[0].Leads, 1)
	assert.Equal(t, "lead-1", first.Columns[0].Leads[0].ID)
}

func TestFunnelBoard(t *testing.T) {
	f, _ := seededFunnel(t)

	board := f.Board(usecase.DateRange{})

	require.Len(t, board.Columns, 6)
	assert.Equal(t, "80000.00", board.Columns[0].Total.StringFixed(2))
	assert.Len(t, board.Columns[0].Leads, 2)
}
