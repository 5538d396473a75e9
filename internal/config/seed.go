package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xavierca1/ligue-funnel/internal/entity"
	"github.com/xavierca1/ligue-funnel/internal/usecase"
)

// Seed overrides the built-in catalog for slots that were never persisted.
// Lists left out of the file keep the built-in values.
type Seed struct {
	Stages      []entity.FunnelStage           `yaml:"stages"`
	Modules     []entity.Module                `yaml:"modules"`
	Campaigns   []entity.Campaign              `yaml:"campaigns"`
	Templates   []entity.CommunicationTemplate `yaml:"templates"`
	SampleLeads *bool                          `yaml:"sample_leads"`
}

// LoadSeed reads a YAML seed file, expanding ${VAR} references first.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) (*Seed, error) {
	expanded := os.ExpandEnv(string(data))

	var s Seed
	if err := yaml.Unmarshal([]byte(expanded), &s); err != nil {
		return nil, fmt.Errorf("parse seed YAML: %w", err)
	}

	for i, c := range s.Campaigns {
		src, err := entity.ParseCampaignSource(string(c.Source))
		if err != nil {
			return nil, fmt.Errorf("seed campaign %q: %w", c.ID, err)
		}
		s.Campaigns[i].Source = src
	}
	for _, st := range s.Stages {
		if st.ID == "" {
			return nil, fmt.Errorf("seed stage %q has no id", st.Title)
		}
	}
	return &s, nil
}

// Apply returns d with the seed's lists in place of the built-in ones.
func (s *Seed) Apply(d usecase.Defaults) usecase.Defaults {
	if s == nil {
		return d
	}
	if len(s.Stages) > 0 {
		d.Stages = s.Stages
	}
	if len(s.Modules) > 0 {
		d.Modules = s.Modules
	}
	if len(s.Campaigns) > 0 {
		d.Campaigns = s.Campaigns
	}
	if len(s.Templates) > 0 {
		d.Templates = s.Templates
	}
	if s.SampleLeads != nil && !*s.SampleLeads {
		d.Leads = []entity.Lead{}
	}
	return d
}
