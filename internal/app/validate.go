package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobnotify-engine/internal/domain"
)

// FieldError names one rejected preference field by its JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "invalid preferences: " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "location", func(fl validator.FieldLevel) bool {
		return domain.ValidLocation(fl.Field().String())
	})
	mustRegister(v, "mode", func(fl validator.FieldLevel) bool {
		return domain.Mode(fl.Field().String()).Valid()
	})
	mustRegister(v, "experience", func(fl validator.FieldLevel) bool {
		return domain.Experience(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// NormalizePreferences trims and de-duplicates list fields. Modes and
// experience are matched case-insensitively against their enums so "remote"
// from a form becomes "Remote".
func NormalizePreferences(p domain.Preferences) domain.Preferences {
	p.RoleKeywords = domain.CleanList(p.RoleKeywords)
	p.Skills = domain.CleanList(p.Skills)

	locs := domain.CleanList(p.PreferredLocations)
	for i, l := range locs {
		for _, known := range domain.Locations {
			if strings.EqualFold(l, known) {
				locs[i] = known
			}
		}
	}
	p.PreferredLocations = locs

	var modes []domain.Mode
	seen := map[domain.Mode]bool{}
	for _, m := range p.PreferredMode {
		m = domain.Mode(strings.TrimSpace(string(m)))
		for _, known := range domain.Modes {
			if strings.EqualFold(string(m), string(known)) {
				m = known
			}
		}
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		modes = append(modes, m)
	}
	p.PreferredMode = modes

	exp := domain.Experience(strings.TrimSpace(string(p.ExperienceLevel)))
	for _, known := range domain.Experiences {
		if strings.EqualFold(string(exp), string(known)) {
			exp = known
		}
	}
	p.ExperienceLevel = exp
	return p
}

// ValidatePreferences returns a *ValidationError listing every bad field.
func ValidatePreferences(p domain.Preferences) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate preferences: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "max":
		return "must be between 0 and 100"
	case "location":
		return fmt.Sprintf("%q is not a known location", fe.Value())
	case "mode":
		return fmt.Sprintf("%q is not one of Remote, Hybrid, Onsite", fe.Value())
	case "experience":
		return fmt.Sprintf("%q is not one of Fresher, 0-1, 1-3, 3-5", fe.Value())
	default:
		return "failed " + fe.Tag()
	}
}
