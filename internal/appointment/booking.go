package appointment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-petcare/internal/config"
)

const (
	tagTimeOfDay = "timeofday"
	tagDate      = "datetime"
	tagOneOf     = "oneof"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation(tagTimeOfDay, func(fl validator.FieldLevel) bool {
		_, err := ParseTimeOfDay(fl.Field().String())
		return err == nil
	})
	return v
}

// BookingRequest is the raw input of the booking form.
type BookingRequest struct {
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,timeofday"`
	Provider string `json:"provider" validate:"required"`
	Reason   string `json:"reason" validate:"required"`
	Urgency  string `json:"urgency" validate:"omitempty,oneof=high low"`
}

func (r BookingRequest) normalized() BookingRequest {
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Provider = strings.TrimSpace(r.Provider)
	r.Reason = strings.TrimSpace(r.Reason)
	r.Urgency = strings.ToLower(strings.TrimSpace(r.Urgency))
	return r
}

// Validate checks r and returns a *ValidationError naming every bad field.
func (r BookingRequest) Validate() error {
	return toValidationError(validate.Struct(r.normalized()))
}

// FieldError names one rejected field and the rule it broke.
type FieldError struct {
	Field string
	Tag   string
}

// ValidationError lists the fields rejected by input validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Tag+")")
	}
	return fmt.Sprintf("%s: %s", config.ErrValidation, strings.Join(parts, ", "))
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: strings.ToLower(fe.Field()), Tag: fe.Tag()})
	}
	return out
}
