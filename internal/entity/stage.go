package entity

// StageID references a FunnelStage by id. Stages are configured at runtime,
// so the reference is only meaningful once resolved against the live list.
type StageID string

// FallbackStageID is used for new leads when no stage is configured.
const FallbackStageID StageID = "new-lead"

type FunnelStage struct {
	ID    StageID `json:"id" yaml:"id"`
	Title string  `json:"title" yaml:"title"`
	Color string  `json:"color" yaml:"color"`
}

// StageRef is a StageID resolved against a stage list. An unresolved ref is
// the "unknown stage" variant, never a nil stage.
type StageRef struct {
	ID    StageID
	stage *FunnelStage
}

func ResolveStage(stages []FunnelStage, id StageID) StageRef {
	for i := range stages {
		if stages[i].ID == id {
			s := stages[i]
			return StageRef{ID: id, stage: &s}
		}
	}
	return StageRef{ID: id}
}

func (r StageRef) Known() bool {
	return r.stage != nil
}

func (r StageRef) Stage() (FunnelStage, bool) {
	if r.stage == nil {
		return FunnelStage{}, false
	}
	return *r.stage, true
}

// Title returns the stage title, or fallback for an unknown stage.
func (r StageRef) Title(fallback string) string {
	if r.stage == nil {
		return fallback
	}
	return r.stage.Title
}

func IndexOfStage(stages []FunnelStage, id StageID) int {
	for i, s := range stages {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// DefaultStageID is the first configured stage, or FallbackStageID.
func DefaultStageID(stages []FunnelStage) StageID {
	if len(stages) == 0 {
		return FallbackStageID
	}
	return stages[0].ID
}
