package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type LeadInput struct {
	Name        string            `json:"name" validate:"required"`
	Company     string            `json:"company" validate:"required"`
	Sector      string            `json:"sector"`
	Email       string            `json:"email" validate:"required"`
	Phone       string            `json:"phone"`
	CampaignID  *string           `json:"campaign_id"`
	LastContact string            `json:"last_contact"`
	Modules     []ModuleSelection `json:"modules" validate:"dive"`
}

// ModuleSelection attaches a catalog module; Price overrides the catalog price.
type ModuleSelection struct {
	ModuleID string           `json:"module_id" validate:"required"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type EventInput struct {
	Title string `json:"title" validate:"required"`
	Start string `json:"start" validate:"required"`
	End   string `json:"end" validate:"required"`
}

type ModuleInput struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price"`
}

type CampaignInput struct {
	Name   string `json:"name" validate:"required"`
	Source string `json:"source" validate:"required"`
	Color  string `json:"color"`
}

type TemplateInput struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

type StageInput struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateInput runs the required-field checks and returns a DomainError
// listing every failing field.
func validateInput(v *validator.Validate, input any) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
	}

	var list []ValidationError
	for _, fe := range verrs {
		list = append(list, ValidationError{Field: fe.Field(), Message: "is required"})
	}

	errMsg := "validation failed: "
	for i, e := range list {
		if i > 0 {
			errMsg += ", "
		}
		errMsg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: errMsg,
		Err:     err,
	}
}

func (in *LeadInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Company = strings.TrimSpace(in.Company)
	in.Sector = strings.TrimSpace(in.Sector)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.LastContact = strings.TrimSpace(in.LastContact)
	if in.CampaignID != nil && strings.TrimSpace(*in.CampaignID) == "" {
		in.CampaignID = nil
	}
}
