package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// Transfer is what a picked-up card carries: the lead id and nothing else.
// A transfer is consumed by the first drop.
type Transfer struct {
	leadID   string
	consumed bool
}

func PickUp(leadID string) *Transfer {
	return &Transfer{leadID: strings.TrimSpace(leadID)}
}

func (t *Transfer) LeadID() string {
	if t == nil {
		return ""
	}
	return t.leadID
}

// DropTarget resolves a drop position to exactly one configured stage.
func DropTarget(stages []entity.FunnelStage, id entity.StageID) (entity.FunnelStage, bool) {
	return entity.ResolveStage(stages, id).Stage()
}

// Drop ends a transfer on the column for stageID. It reports false when
// nothing moved: no transfer, a second drop, a target outside the
// configured stages, or the lead's own column.
func (f *Funnel) Drop(ctx context.Context, t *Transfer, stageID entity.StageID) (entity.Lead, bool, error) {
	if t == nil || t.consumed || t.leadID == "" {
		return entity.Lead{}, false, nil
	}
	t.consumed = true

	target, ok := DropTarget(f.Stages(), stageID)
	if !ok {
		return entity.Lead{}, false, nil
	}
	lead, moved, err := f.changeStage(ctx, t.leadID, target.ID)
	if err != nil {
		return entity.Lead{}, false, err
	}
	return lead, moved, nil
}
