package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

type brokenStore struct{ *memStore }

func (brokenStore) Load(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestNewFunnel_DefaultsForMissingSlots(t *testing.T) {
	f, _ := seededFunnel(t)

	snap := f.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Len(t, snap.Leads, 7)
	assert.Equal(t, usecase.DefaultStages, snap.Stages)
	assert.Len(t, snap.Modules, 6)
	assert.Len(t, snap.Campaigns, 4)
	assert.Len(t, snap.Templates, 2)
}

func TestNewFunnel_CorruptSlotFallsBack(t *testing.T) {
	store := newMemStore()
	store.slots[usecase.SlotStages] = []byte("{not json")
	store.slots[usecase.SlotCampaigns] = []byte(`[{"id":"camp-9","name":"Parceiros","source":"Outro","color":"bg-gray-500"}]`)

	f := usecase.NewFunnel(context.Background(), store, usecase.BuiltinDefaults())

	assert.Equal(t, usecase.DefaultStages, f.Stages())
	require.Len(t, f.Campaigns(), 1)
	assert.Equal(t, "camp-9", f.Campaigns()[0].ID)
}

func TestNewFunnel_UnreadableStoreFallsBack(t *testing.T) {
	f := usecase.NewFunnel(context.Background(), brokenStore{newMemStore()}, usecase.BuiltinDefaults())

	assert.Len(t, f.Leads(), 7)
}

func TestNewFunnel_RecomputesStoredTotals(t *testing.T) {
	lead := usecase.BuiltinDefaults().Leads[0]
	raw, err := json.Marshal([]entity.Lead{lead})
	require.NoError(t, err)

	var tampered []map[string]any
	require.NoError(t, json.Unmarshal(raw, &tampered))
	tampered[0]["total_value"] = "1"
	raw, err = json.Marshal(tampered)
	require.NoError(t, err)

	store := newMemStore()
	store.slots[usecase.SlotLeads] = raw
	f := usecase.NewFunnel(context.Background(), store, usecase.BuiltinDefaults())

	got, err := f.Lead("lead-1")
	require.NoError(t, err)
	assert.Equal(t, "58000.00", got.TotalValue.StringFixed(2))
}

func TestMutationsSurviveReload(t *testing.T) {
	f, store := seededFunnel(t)
	ctx := context.Background()

	_, err := f.ChangeStage(ctx, "lead-1", "won")
	require.NoError(t, err)
	_, err = f.AddNote(ctx, "lead-1", "fechou contrato")
	require.NoError(t, err)

	reloaded := usecase.NewFunnel(ctx, store, usecase.BuiltinDefaults())
	lead, err := reloaded.Lead("lead-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StageID("won"), lead.StageID)
	require.Len(t, lead.History, 3)
	assert.Equal(t, "fechou contrato", lead.History[0].Content)
	assert.Equal(t, testNow, lead.History[0].Date)
}

func TestBuiltinDefaults_AreIndependentCopies(t *testing.T) {
	a := usecase.BuiltinDefaults()
	a.Stages[0].Title = "Mudado"
	a.Leads[0].Name = "Mudado"

	b := usecase.BuiltinDefaults()
	assert.Equal(t, "Novo Lead", b.Stages[0].Title)
	assert.Equal(t, "Ana Silva", b.Leads[0].Name)
	for _, l := range b.Leads {
		assert.NotEmpty(t, l.History, l.ID)
		assert.True(t, l.TotalValue.Equal(entity.SumPrices(l.Modules)), l.ID)
	}
}
