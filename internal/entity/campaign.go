package entity

import (
	"fmt"
	"strings"
)

type CampaignSource string

const (
	SourceGoogle      CampaignSource = "Google"
	SourceInstagram   CampaignSource = "Instagram"
	SourceLandingPage CampaignSource = "Landing Page"
	SourceOther       CampaignSource = "Outro"
)

var CampaignSources = []CampaignSource{SourceGoogle, SourceInstagram, SourceLandingPage, SourceOther}

type Campaign struct {
	ID     string         `json:"id" yaml:"id"`
	Name   string         `json:"name" yaml:"name"`
	Source CampaignSource `json:"source" yaml:"source"`
	Color  string         `json:"color" yaml:"color"`
}

// ParseCampaignSource accepts the closed set case-insensitively; "Other" is
// an alias of "Outro".
func ParseCampaignSource(s string) (CampaignSource, error) {
	v := strings.TrimSpace(s)
	if strings.EqualFold(v, "Other") {
		return SourceOther, nil
	}
	for _, src := range CampaignSources {
		if strings.EqualFold(v, string(src)) {
			return src, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCampaignSource, s)
}

func FindCampaign(campaigns []Campaign, id string) (Campaign, bool) {
	for _, c := range campaigns {
		if c.ID == id {
			return c, true
		}
	}
	return Campaign{}, false
}
