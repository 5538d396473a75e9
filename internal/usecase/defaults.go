package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xavierca1/ligue-funnel/internal/entity"
)

// Defaults are the values used for a slot that was never persisted.
type Defaults struct {
	Leads     []entity.Lead
	Modules   []entity.Module
	Stages    []entity.FunnelStage
	Campaigns []entity.Campaign
	Templates []entity.CommunicationTemplate
}

var DefaultStages = []entity.FunnelStage{
	{ID: "new-lead", Title: "Novo Lead", Color: "bg-blue-500"},
	{ID: "contacted", Title: "Contactado", Color: "bg-sky-500"},
	{ID: "proposal", Title: "Proposta", Color: "bg-indigo-500"},
	{ID: "negotiation", Title: "Negociação", Color: "bg-purple-500"},
	{ID: "won", Title: "Ganhou", Color: "bg-status-won"},
	{ID: "lost", Title: "Perdeu", Color: "bg-status-lost"},
}

var DefaultModules = []entity.Module{
	{ID: "module-fin", Name: "Financeiro", Price: decimal.NewFromInt(15000)},
	{ID: "module-stock", Name: "Estoque", Price: decimal.NewFromInt(12000)},
	{ID: "module-rh", Name: "RH", Price: decimal.NewFromInt(10000)},
	{ID: "module-sales", Name: "Vendas (CRM)", Price: decimal.NewFromInt(18000)},
	{ID: "module-bi", Name: "Business Intelligence", Price: decimal.NewFromInt(25000)},
	{ID: "module-prod", Name: "Produção (PCP)", Price: decimal.NewFromInt(22000)},
}

var DefaultCampaigns = []entity.Campaign{
	{ID: "camp-1", Name: "Google Ads Q4", Source: entity.SourceGoogle, Color: "bg-red-500"},
	{ID: "camp-2", Name: "Feirão de Software", Source: entity.SourceLandingPage, Color: "bg-blue-500"},
	{ID: "camp-3", Name: "Reels Patrocinado", Source: entity.SourceInstagram, Color: "bg-pink-500"},
	{ID: "camp-4", Name: "Indicação de Parceiro", Source: entity.SourceOther, Color: "bg-gray-500"},
}

var DefaultTemplates = []entity.CommunicationTemplate{
	{
		ID:    "tpl-1",
		Title: "Primeiro Contato (Pós-Levantada de Mão)",
		Body:  "Olá {{lead.name}},\n\nMeu nome é [Seu Nome] e falo em nome da [Sua Empresa].\n\nVi que você demonstrou interesse em nosso software de gestão. Gostaria de agendar uma breve conversa para entender melhor os desafios da {{lead.company}} e como podemos ajudar.\n\nQual seria o melhor horário para você?\n\nAtenciosamente,",
	},
	{
		ID:    "tpl-2",
		Title: "Follow-up (Pós-Proposta)",
		Body:  "Olá {{lead.name}},\n\nTudo bem?\n\nGostaria de saber se você teve a oportunidade de analisar a proposta que enviei para a {{lead.company}}.\n\nFico à disposição para esclarecer qualquer dúvida que tenha surgido.\n\nUm abraço,",
	},
}

// BuiltinDefaults returns fresh copies of the seed catalog and sample leads.
func BuiltinDefaults() Defaults {
	return Defaults{
		Leads:     sampleLeads(),
		Modules:   append([]entity.Module{}, DefaultModules...),
		Stages:    append([]entity.FunnelStage{}, DefaultStages...),
		Campaigns: append([]entity.Campaign{}, DefaultCampaigns...),
		Templates: append([]entity.CommunicationTemplate{}, DefaultTemplates...),
	}
}

func sampleLeads() []entity.Lead {
	mod := func(id string) entity.Module {
		m, _ := entity.FindModule(DefaultModules, id)
		return m
	}
	camp := func(id string) *string { return &id }
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}
	created := func(id, at string) entity.HistoryEntry {
		return entity.NewHistoryEntry(id, ts(at), entity.HistoryCreation, HistoryCreatedContent)
	}

	leads := []entity.Lead{
		{
			ID: "lead-1", Name: "Ana Silva", Company: "Tech Solutions Ltda.", Sector: "Consultoria TI",
			Email: "ana.silva@techsolutions.com", Phone: "(11) 98765-4321",
			Modules:    []entity.Module{mod("module-fin"), mod("module-sales"), mod("module-bi")},
			StageID:    "new-lead",
			CampaignID: camp("camp-1"), LastContact: "2023-10-26",
			History: []entity.HistoryEntry{created("hist-1", "2023-10-26T10:00:00Z")},
		},
		{
			ID: "lead-2", Name: "Bruno Costa", Company: "Inova Corp", Sector: "Startup",
			Email: "bruno.costa@inovacorp.com", Phone: "(21) 91234-5678",
			Modules:    []entity.Module{mod("module-stock"), mod("module-prod")},
			StageID:    "contacted",
			CampaignID: camp("camp-2"), LastContact: "2023-10-28",
			History: []entity.HistoryEntry{
				entity.NewHistoryEntry("hist-2-2", ts("2023-10-28T11:30:00Z"), entity.HistoryStatusChange, "Status alterado de 'Novo Lead' para 'Contactado'."),
				created("hist-2-1", "2023-10-27T14:00:00Z"),
			},
			CalendarLinked: true,
			CalendarEvents: []entity.CalendarEvent{
				{ID: "evt-1", Title: "Reunião de Apresentação", Start: ts("2023-11-10T14:00:00Z"), End: ts("2023-11-10T15:00:00Z")},
			},
		},
		{
			ID: "lead-3", Name: "Carla Dias", Company: "Mercado Global", Sector: "Varejo",
			Email: "carla.dias@mercadoglobal.com", Phone: "(31) 99999-8888",
			Modules:    append([]entity.Module{}, DefaultModules...),
			StageID:    "proposal",
			CampaignID: camp("camp-3"), LastContact: "2023-11-01",
			History: []entity.HistoryEntry{created("hist-3-1", "2023-10-29T09:00:00Z")},
		},
		{
			ID: "lead-4", Name: "Daniel Martins", Company: "Logística Eficiente", Sector: "Logística",
			Email: "daniel.martins@logistica.com", Phone: "(41) 98877-6655",
			Modules:    []entity.Module{mod("module-stock"), mod("module-prod")},
			StageID:    "negotiation",
			CampaignID: camp("camp-1"), LastContact: "2023-11-02",
			History: []entity.HistoryEntry{created("hist-4-1", "2023-10-30T16:00:00Z")},
		},
		{
			ID: "lead-5", Name: "Eduarda Ferreira", Company: "Consultoria ABC", Sector: "Serviços",
			Email: "eduarda.f@consultoriaabc.com", Phone: "(51) 99654-3210",
			Modules:     []entity.Module{mod("module-bi")},
			StageID:     "won",
			LastContact: "2023-10-25",
			History:     []entity.HistoryEntry{created("hist-5-1", "2023-10-20T11:00:00Z")},
		},
		{
			ID: "lead-6", Name: "Fábio Souza", Company: "Varejo TOP", Sector: "E-commerce",
			Email: "fabio.souza@varejotop.com", Phone: "(61) 98123-4567",
			Modules:    []entity.Module{mod("module-sales")},
			StageID:    "lost",
			CampaignID: camp("camp-3"), LastContact: "2023-10-29",
			History: []entity.HistoryEntry{created("hist-6-1", "2023-10-22T17:00:00Z")},
		},
		{
			ID: "lead-7", Name: "Gabriela Lima", Company: "Indústria Forte", Sector: "Indústria",
			Email: "gabriela.lima@industriaforte.com", Phone: "(71) 99876-5432",
			Modules: []entity.Module{mod("module-prod")},
			StageID: "new-lead",
			History: []entity.HistoryEntry{created("hist-7-1", "2023-11-03T08:30:00Z")},
		},
	}

	for i := range leads {
		leads[i].RecomputeTotal()
		if leads[i].CalendarEvents == nil {
			leads[i].CalendarEvents = []entity.CalendarEvent{}
		}
	}
	return leads
}
