package usecase

import (
	"context"
	"strings"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

const DefaultStageTitle = "Nova Etapa"

// StagePalette is cycled through when a stage is created without a color.
var StagePalette = []string{
	"bg-slate-500", "bg-gray-500", "bg-zinc-500", "bg-neutral-500", "bg-stone-500",
	"bg-red-500", "bg-orange-500", "bg-amber-500", "bg-yellow-500", "bg-lime-500",
	"bg-green-500", "bg-emerald-500", "bg-teal-500", "bg-cyan-500", "bg-sky-500",
	"bg-blue-500", "bg-indigo-500", "bg-violet-500", "bg-purple-500", "bg-fuchsia-500",
	"bg-pink-500", "bg-rose-500",
}

func withStageDefaults(s entity.FunnelStage, position int) entity.FunnelStage {
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		s.Title = DefaultStageTitle
	}
	if strings.TrimSpace(s.Color) == "" {
		s.Color = StagePalette[position%len(StagePalette)]
	}
	return s
}

// --- Módulos ---

func (f *Funnel) AddModule(ctx context.Context, in ModuleInput) (entity.Module, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(f.validate, in); err != nil {
		return entity.Module{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	m := entity.Module{ID: f.newID(), Name: in.Name, Price: in.Price}
	modules := append(append([]entity.Module{}, f.state.Modules...), m)
	if err := f.persist(ctx, SlotModules, modules); err != nil {
		return entity.Module{}, err
	}
	f.state.Modules = modules
	return m, nil
}

// UpdateModule edits the catalog entry only. Leads keep the snapshot they
// were saved with.
func (f *Funnel) UpdateModule(ctx context.Context, id string, in ModuleInput) (entity.Module, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateInput(f.validate, in); err != nil {
		return entity.Module{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	modules := append([]entity.Module{}, f.state.Modules...)
	for i := range modules {
		if modules[i].ID != id {
			continue
		}
		modules[i].Name = in.Name
		modules[i].Price = in.Price
		if err := f.persist(ctx, SlotModules, modules); err != nil {
			return entity.Module{}, err
		}
		f.state.Modules = modules
		return modules[i], nil
	}
	return entity.Module{}, notFound(entity.ErrModuleNotFound, id)
}

// --- Campanhas ---

func (f *Funnel) AddCampaign(ctx context.Context, in CampaignInput) (entity.Campaign, error) {
	c, err := f.campaignFromInput(in)
	if err != nil {
		return entity.Campaign{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	c.ID = f.newID()
	campaigns := append(append([]entity.Campaign{}, f.state.Campaigns...), c)
	if err := f.persist(ctx, SlotCampaigns, campaigns); err != nil {
		return entity.Campaign{}, err
	}
	f.state.Campaigns = campaigns
	return c, nil
}

func (f *Funnel) UpdateCampaign(ctx context.Context, id string, in CampaignInput) (entity.Campaign, error) {
	c, err := f.campaignFromInput(in)
	if err != nil {
		return entity.Campaign{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	campaigns := append([]entity.Campaign{}, f.state.Campaigns...)
	for i := range campaigns {
		if campaigns[i].ID != id {
			continue
		}
		c.ID = id
		campaigns[i] = c
		if err := f.persist(ctx, SlotCampaigns, campaigns); err != nil {
			return entity.Campaign{}, err
		}
		f.state.Campaigns = campaigns
		return c, nil
	}
	return entity.Campaign{}, notFound(entity.ErrCampaignNotFound, id)
}

func (f *Funnel) campaignFromInput(in CampaignInput) (entity.Campaign, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if err := validateInput(f.validate, in); err != nil {
		return entity.Campaign{}, err
	}
	src, err := entity.ParseCampaignSource(in.Source)
	if err != nil {
		return entity.Campaign{}, &DomainError{Code: CodeInvalidSource, Message: err.Error(), Err: err}
	}
	if in.Color == "" {
		in.Color = "bg-gray-500"
	}
	return entity.Campaign{Name: in.Name, Source: src, Color: in.Color}, nil
}

// --- Modelos de comunicação ---

func (f *Funnel) AddTemplate(ctx context.Context, in TemplateInput) (entity.CommunicationTemplate, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(f.validate, in); err != nil {
		return entity.CommunicationTemplate{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	t := entity.CommunicationTemplate{ID: f.newID(), Title: in.Title, Body: in.Body}
	templates := append(append([]entity.CommunicationTemplate{}, f.state.Templates...), t)
	if err := f.persist(ctx, SlotTemplates, templates); err != nil {
		return entity.CommunicationTemplate{}, err
	}
	f.state.Templates = templates
	return t, nil
}

func (f *Funnel) UpdateTemplate(ctx context.Context, id string, in TemplateInput) (entity.CommunicationTemplate, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validateInput(f.validate, in); err != nil {
		return entity.CommunicationTemplate{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	templates := append([]entity.CommunicationTemplate{}, f.state.Templates...)
	for i := range templates {
		if templates[i].ID != id {
			continue
		}
		templates[i].Title = in.Title
		templates[i].Body = in.Body
		if err := f.persist(ctx, SlotTemplates, templates); err != nil {
			return entity.CommunicationTemplate{}, err
		}
		f.state.Templates = templates
		return templates[i], nil
	}
	return entity.CommunicationTemplate{}, notFound(entity.ErrTemplateNotFound, id)
}

func (f *Funnel) DeleteTemplate(ctx context.Context, id string, c Confirmer) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := entity.FindTemplate(f.state.Templates, id); !ok {
		return notFound(entity.ErrTemplateNotFound, id)
	}
	if !confirmed(c, PromptDeleteTemplate) {
		return notConfirmed("modelo")
	}

	templates := make([]entity.CommunicationTemplate, 0, len(f.state.Templates))
	for _, t := range f.state.Templates {
		if t.ID != id {
			templates = append(templates, t)
		}
	}
	if err := f.persist(ctx, SlotTemplates, templates); err != nil {
		return err
	}
	f.state.Templates = templates
	return nil
}

// --- Etapas ---

// AddStage appends a stage at the end of the pipeline.
func (f *Funnel) AddStage(ctx context.Context, in StageInput) (entity.FunnelStage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := withStageDefaults(entity.FunnelStage{
		ID:    entity.StageID(f.newID()),
		Title: in.Title,
		Color: in.Color,
	}, len(f.state.Stages))

	stages := append(f.stagesCopy(), s)
	if err := f.persist(ctx, SlotStages, stages); err != nil {
		return entity.FunnelStage{}, err
	}
	f.state.Stages = stages
	return s, nil
}

// UpdateStage renames or recolors a stage. Empty fields keep their value.
func (f *Funnel) UpdateStage(ctx context.Context, id entity.StageID, in StageInput) (entity.FunnelStage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := entity.IndexOfStage(f.state.Stages, id)
	if i < 0 {
		return entity.FunnelStage{}, notFound(entity.ErrStageNotFound, string(id))
	}
	stages := f.stagesCopy()
	if t := strings.TrimSpace(in.Title); t != "" {
		stages[i].Title = t
	}
	if c := strings.TrimSpace(in.Color); c != "" {
		stages[i].Color = c
	}
	if err := f.persist(ctx, SlotStages, stages); err != nil {
		return entity.FunnelStage{}, err
	}
	f.state.Stages = stages
	return stages[i], nil
}
