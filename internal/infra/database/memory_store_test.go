package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Load(ctx, "crm-leads")
	assert.ErrorIs(t, err, entity.ErrSlotNotFound)

	value := []byte(`[]`)
	require.NoError(t, s.Save(ctx, "crm-leads", value))
	value[0] = 'x'

	got, err := s.Load(ctx, "crm-leads")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}
