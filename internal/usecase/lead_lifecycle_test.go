package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

func TestCreateLead_Success(t *testing.T) {
	f, store := newTestFunnel(t)
	ctx := context.Background()

	in := validLeadInput()
	in.CampaignID = strPtr("camp-1")
	in.Modules = []usecase.ModuleSelection{{ModuleID: "module-fin"}, {ModuleID: "module-bi"}}

	lead, err := f.CreateLead(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "id-1", lead.ID)
	assert.Equal(t, entity.StageID("new-lead"), lead.StageID)
	assert.Equal(t, "40000.00", lead.TotalValue.StringFixed(2))
	assert.Equal(t, "camp-1", *lead.CampaignID)
	assert.False(t, lead.CalendarLinked)
	assert.NotNil(t, lead.CalendarEvents)
	assert.Empty(t, lead.CalendarEvents)

	require.Len(t, lead.History, 1)
	assert.Equal(t, entity.HistoryCreation, lead.History[0].Type)
	assert.Equal(t, usecase.HistoryCreatedContent, lead.History[0].Content)
	assert.Equal(t, testNow, lead.History[0].Date)

	assert.Contains(t, store.saves, usecase.SlotLeads)
}

func TestCreateLead_PrependsToCollection(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	first, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	in := validLeadInput()
	in.Name = "Igor Nunes"
	second, err := f.CreateLead(ctx, in)
	require.NoError(t, err)

	leads := f.Leads()
	require.Len(t, leads, 2)
	assert.Equal(t, second.ID, leads[0].ID)
	assert.Equal(t, first.ID, leads[1].ID)
}

func TestCreateLead_DefaultStageFollowsStageOrder(t *testing.T) {
	d := usecase.BuiltinDefaults()
	d.Leads = nil
	d.Stages = []entity.FunnelStage{{ID: "qualify", Title: "Qualificação", Color: "bg-teal-500"}}
	f, _ := newFunnelWith(t, d)

	lead, err := f.CreateLead(context.Background(), validLeadInput())

	require.NoError(t, err)
	assert.Equal(t, entity.StageID("qualify"), lead.StageID)
}

func TestCreateLead_FallbackStageWithoutStages(t *testing.T) {
	d := usecase.BuiltinDefaults()
	d.Leads = nil
	d.Stages = []entity.FunnelStage{}
	f, _ := newFunnelWith(t, d)

	lead, err := f.CreateLead(context.Background(), validLeadInput())

	require.NoError(t, err)
	assert.Equal(t, entity.FallbackStageID, lead.StageID)
}

func TestCreateLead_MissingRequiredFields(t *testing.T) {
	f, store := newTestFunnel(t)

	in := validLeadInput()
	in.Name = "   "
	in.Email = ""

	_, err := f.CreateLead(context.Background(), in)

	require.Error(t, err)
	assert.True(t, usecase.IsDomainError(err))
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "email")
	assert.Empty(t, f.Leads())
	assert.Empty(t, store.saves)
}

func TestCreateLead_UnknownCampaignOrModule(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	in := validLeadInput()
	in.CampaignID = strPtr("camp-x")
	_, err := f.CreateLead(ctx, in)
	assert.Equal(t, usecase.CodeNotFound, usecase.ErrorCode(err))
	assert.ErrorIs(t, err, entity.ErrCampaignNotFound)

	in = validLeadInput()
	in.Modules = []usecase.ModuleSelection{{ModuleID: "module-x"}}
	_, err = f.CreateLead(ctx, in)
	assert.ErrorIs(t, err, entity.ErrModuleNotFound)

	assert.Empty(t, f.Leads())
}

func TestCreateLead_BlankCampaignMeansNone(t *testing.T) {
	f, _ := newTestFunnel(t)

	in := validLeadInput()
	in.CampaignID = strPtr("  ")
	lead, err := f.CreateLead(context.Background(), in)

	require.NoError(t, err)
	assert.Nil(t, lead.CampaignID)
}

func TestCreateLead_StorageFailureLeavesStateUnchanged(t *testing.T) {
	f, store := newTestFunnel(t)
	store.failOn(usecase.SlotLeads, errors.New("disk full"))

	_, err := f.CreateLead(context.Background(), validLeadInput())

	require.Error(t, err)
	assert.True(t, usecase.IsTechnicalError(err))
	assert.Equal(t, usecase.CodeStorage, usecase.ErrorCode(err))
	assert.Empty(t, f.Leads())
}

func TestCreateLead_PublishesEvent(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e entity.LeadEvent) bool {
		return e.Type == entity.LeadCreated && e.Name == "Helena Rocha" && e.ToStage == "new-lead"
	})).Return(nil).Once()

	f, _ := newTestFunnel(t, usecase.WithPublisher(pub))
	_, err := f.CreateLead(context.Background(), validLeadInput())

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestCreateLead_PublishFailureIsNotReturned(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	f, _ := newTestFunnel(t, usecase.WithPublisher(pub))
	lead, err := f.CreateLead(context.Background(), validLeadInput())

	require.NoError(t, err)
	_, err = f.Lead(lead.ID)
	assert.NoError(t, err)
}

func TestUpdateLead_KeepsStageHistoryAndCalendar(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	_, err = f.ChangeStage(ctx, lead.ID, "proposal")
	require.NoError(t, err)
	_, err = f.ToggleCalendarLink(ctx, lead.ID)
	require.NoError(t, err)

	in := validLeadInput()
	in.Company = "Rocha & Filhos"
	in.Modules = []usecase.ModuleSelection{{ModuleID: "module-rh"}}
	updated, err := f.UpdateLead(ctx, lead.ID, in)

	require.NoError(t, err)
	assert.Equal(t, "Rocha & Filhos", updated.Company)
	assert.Equal(t, entity.StageID("proposal"), updated.StageID)
	assert.Len(t, updated.History, 2)
	assert.True(t, updated.CalendarLinked)
	assert.Equal(t, "10000.00", updated.TotalValue.StringFixed(2))
}

func TestUpdateLead_KeepsExistingSnapshotPrice(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	in := validLeadInput()
	in.Modules = []usecase.ModuleSelection{{ModuleID: "module-fin"}}
	lead, err := f.CreateLead(ctx, in)
	require.NoError(t, err)

	_, err = f.UpdateModule(ctx, "module-fin", usecase.ModuleInput{Name: "Financeiro", Price: decimal.NewFromInt(99000)})
	require.NoError(t, err)

	updated, err := f.UpdateLead(ctx, lead.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "15000.00", updated.TotalValue.StringFixed(2))

	override := decimal.RequireFromString("13500.50")
	in.Modules = []usecase.ModuleSelection{{ModuleID: "module-fin", Price: &override}}
	updated, err = f.UpdateLead(ctx, lead.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "13500.50", updated.TotalValue.StringFixed(2))
}

func TestUpdateLead_NotFound(t *testing.T) {
	f, _ := newTestFunnel(t)

	_, err := f.UpdateLead(context.Background(), "missing", validLeadInput())

	assert.Equal(t, usecase.CodeNotFound, usecase.ErrorCode(err))
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestDeleteLead(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	err = f.DeleteLead(ctx, lead.ID, usecase.NeverConfirm)
	assert.Equal(t, usecase.CodeNotConfirmed, usecase.ErrorCode(err))
	assert.Len(t, f.Leads(), 1)

	err = f.DeleteLead(ctx, lead.ID, nil)
	assert.Equal(t, usecase.CodeNotConfirmed, usecase.ErrorCode(err))

	var prompt string
	err = f.DeleteLead(ctx, lead.ID, usecase.ConfirmFunc(func(p string) bool {
		prompt = p
		return true
	}))
	require.NoError(t, err)
	assert.Equal(t, usecase.PromptDeleteLead, prompt)
	assert.Empty(t, f.Leads())

	_, err = f.Lead(lead.ID)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestChangeStage_LogsTransition(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	moved, err := f.ChangeStage(ctx, lead.ID, "contacted")

	require.NoError(t, err)
	assert.Equal(t, entity.StageID("contacted"), moved.StageID)
	require.Len(t, moved.History, 2)
	assert.Equal(t, entity.HistoryStatusChange, moved.History[0].Type)
	assert.Equal(t, "Status alterado de 'Novo Lead' para 'Contactado'.", moved.History[0].Content)
	assert.Equal(t, entity.HistoryCreation, moved.History[1].Type)
}

func TestChangeStage_SameStageIsNoop(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.Anything).Return(nil)
	f, store := newTestFunnel(t, usecase.WithPublisher(pub))
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	saves := len(store.saves)

	same, err := f.ChangeStage(ctx, lead.ID, lead.StageID)

	require.NoError(t, err)
	assert.Len(t, same.History, 1)
	assert.Len(t, store.saves, saves)
	pub.AssertNumberOfCalls(t, "PublishLeadEvent", 1)
}

func TestChangeStage_EmptyStageRejected(t *testing.T) {
	f, store := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	saves := len(store.saves)

	for _, to := range []entity.StageID{"", "   "} {
		_, err = f.ChangeStage(ctx, lead.ID, to)
		assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	}

	after, err := f.Lead(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, lead.StageID, after.StageID)
	assert.Len(t, after.History, 1)
	assert.Len(t, store.saves, saves)
}

func TestChangeStage_UnknownStagesUsePlaceholders(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	moved, err := f.ChangeStage(ctx, lead.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, "Status alterado de 'Novo Lead' para 'um novo status'.", moved.History[0].Content)

	moved, err = f.ChangeStage(ctx, lead.ID, "won")
	require.NoError(t, err)
	assert.Equal(t, "Status alterado de 'um status anterior' para 'Ganhou'.", moved.History[0].Content)
}

func TestChangeStage_PublishesTransition(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e entity.LeadEvent) bool {
		return e.Type == entity.LeadCreated
	})).Return(nil)
	pub.On("PublishLeadEvent", mock.Anything, mock.MatchedBy(func(e entity.LeadEvent) bool {
		return e.Type == entity.LeadStageChanged && e.FromStage == "new-lead" && e.ToStage == "won"
	})).Return(nil).Once()

	f, _ := newTestFunnel(t, usecase.WithPublisher(pub))
	ctx := context.Background()
	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	_, err = f.ChangeStage(ctx, lead.ID, "won")

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestAddNote(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	same, err := f.AddNote(ctx, lead.ID, "  \n\t ")
	require.NoError(t, err)
	assert.Len(t, same.History, 1)

	noted, err := f.AddNote(ctx, lead.ID, "  ligar na segunda  ")
	require.NoError(t, err)
	require.Len(t, noted.History, 2)
	assert.Equal(t, entity.HistoryNote, noted.History[0].Type)
	assert.Equal(t, "ligar na segunda", noted.History[0].Content)
}

func TestToggleCalendarLink_KeepsEvents(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	linked, err := f.ToggleCalendarLink(ctx, lead.ID)
	require.NoError(t, err)
	assert.True(t, linked.CalendarLinked)

	_, err = f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{
		Title: "Demo", Start: "2023-11-10T14:00:00Z", End: "2023-11-10T15:00:00Z",
	})
	require.NoError(t, err)

	unlinked, err := f.ToggleCalendarLink(ctx, lead.ID)
	require.NoError(t, err)
	assert.False(t, unlinked.CalendarLinked)
	assert.Len(t, unlinked.CalendarEvents, 1)
}

func TestScheduleEvent_AppendsInEntryOrder(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	_, err = f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{Title: "Primeira", Start: "2023-11-20T14:00:00Z", End: "2023-11-20T15:00:00Z"})
	require.NoError(t, err)
	got, err := f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{Title: "Segunda", Start: "2023-11-10T14:00:00-03:00", End: "2023-11-10T15:00:00-03:00"})
	require.NoError(t, err)

	require.Len(t, got.CalendarEvents, 2)
	assert.Equal(t, "Primeira", got.CalendarEvents[0].Title)
	assert.Equal(t, "Segunda", got.CalendarEvents[1].Title)
	assert.Equal(t, 17, got.CalendarEvents[1].Start.Hour())
	assert.NotEqual(t, got.CalendarEvents[0].ID, got.CalendarEvents[1].ID)
}

func TestScheduleEvent_Invalid(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	_, err = f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{Title: "", Start: "2023-11-20T14:00:00Z", End: "2023-11-20T15:00:00Z"})
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))

	_, err = f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{Title: "Demo", Start: "20/11/2023", End: "2023-11-20T15:00:00Z"})
	assert.Equal(t, usecase.CodeValidation, usecase.ErrorCode(err))
	assert.Contains(t, err.Error(), "start")

	current, err := f.Lead(lead.ID)
	require.NoError(t, err)
	assert.Empty(t, current.CalendarEvents)
}

func TestDeleteEvent(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	lead, err = f.ScheduleEvent(ctx, lead.ID, usecase.EventInput{Title: "Demo", Start: "2023-11-20T14:00:00Z", End: "2023-11-20T15:00:00Z"})
	require.NoError(t, err)
	eventID := lead.CalendarEvents[0].ID

	_, err = f.DeleteEvent(ctx, lead.ID, "missing")
	assert.ErrorIs(t, err, entity.ErrEventNotFound)

	got, err := f.DeleteEvent(ctx, lead.ID, eventID)
	require.NoError(t, err)
	assert.Empty(t, got.CalendarEvents)
}

func TestAttachDetachModule_RecomputesTotal(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	lead, err = f.AttachModule(ctx, lead.ID, "module-fin", nil)
	require.NoError(t, err)
	price := decimal.NewFromInt(20000)
	lead, err = f.AttachModule(ctx, lead.ID, "module-bi", &price)
	require.NoError(t, err)
	assert.Equal(t, "35000.00", lead.TotalValue.StringFixed(2))
	assert.True(t, lead.TotalValue.Equal(entity.SumPrices(lead.Modules)))

	lead, err = f.DetachModule(ctx, lead.ID, "module-fin")
	require.NoError(t, err)
	assert.Equal(t, "20000.00", lead.TotalValue.StringFixed(2))

	same, err := f.DetachModule(ctx, lead.ID, "module-fin")
	require.NoError(t, err)
	assert.Equal(t, lead.TotalValue, same.TotalValue)

	_, err = f.AttachModule(ctx, lead.ID, "module-x", nil)
	assert.ErrorIs(t, err, entity.ErrModuleNotFound)
}

func TestLeadSnapshotsAreIsolated(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)

	lead.History[0].Content = "alterado fora"
	lead.Name = "Outro"
	leads := f.Leads()
	leads[0].History = nil

	current, err := f.Lead(lead.ID)
	require.NoError(t, err)
	assert.Equal(t, "Helena Rocha", current.Name)
	assert.Equal(t, usecase.HistoryCreatedContent, current.History[0].Content)
}

func TestLeadLifecycle_EndToEnd(t *testing.T) {
	f, _ := newTestFunnel(t)
	ctx := context.Background()

	lead, err := f.CreateLead(ctx, validLeadInput())
	require.NoError(t, err)
	assert.True(t, lead.TotalValue.IsZero())

	lead, err = f.AttachModule(ctx, lead.ID, "module-fin", nil)
	require.NoError(t, err)
	assert.Equal(t, "15000.00", lead.TotalValue.StringFixed(2))

	lead, err = f.ChangeStage(ctx, lead.ID, "contacted")
	require.NoError(t, err)
	require.Len(t, lead.History, 2)
	assert.Equal(t, entity.HistoryStatusChange, lead.History[0].Type)
	assert.Contains(t, lead.History[0].Content, "Novo Lead")
	assert.Contains(t, lead.History[0].Content, "Contactado")

	lead, err = f.AddNote(ctx, lead.ID, "called, no answer")
	require.NoError(t, err)
	require.Len(t, lead.History, 3)
	assert.Equal(t, entity.HistoryNote, lead.History[0].Type)
	assert.Equal(t, "called, no answer", lead.History[0].Content)
}
