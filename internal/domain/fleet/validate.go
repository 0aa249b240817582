package fleet

import (
	"regexp"
	"slices"
	"strings"

	"agrofleet/internal/core/apperror"
	"agrofleet/internal/core/types"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.NewValidation(field + " is required").
			WithDetail("field", field)
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	if !slices.Contains(allowed, value) {
		return apperror.NewValidation("invalid " + field).
			WithDetail("field", field).
			WithDetail("value", value).
			WithDetail("allowed", allowed)
	}
	return nil
}

func notNegative(field string, v float64) error {
	if v < 0 {
		return apperror.NewValidation(field + " cannot be negative").
			WithDetail("field", field).
			WithDetail("value", v)
	}
	return nil
}

func notNegativeMoney(field string, v types.Money) error {
	if v.IsNegative() {
		return apperror.NewValidation(field + " cannot be negative").
			WithDetail("field", field).
			WithDetail("value", v.String())
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func dateValue(d types.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
