// Package validator checks incoming transaction and budget records before
// they reach a store. The same custom rules are registered with Gin's
// binding engine so query and body binding agree with the service layer.
package validator

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
)

var monthKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

// dateLayouts are tried in order when parsing a transaction date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// validate is the package-level engine used by ValidateTransaction and
// ValidateBudget. validator.Validate is safe for concurrent use.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerCustom(v)
	return v
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustom(v)
	}
}

func registerCustom(v *validator.Validate) {
	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("month_key", validateMonthKey)
	_ = v.RegisterValidation("calendar_date", validateCalendarDate)
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).IsValid()
}

func validateMonthKey(fl validator.FieldLevel) bool {
	return IsMonthKey(fl.Field().String())
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// IsMonthKey reports whether s has the literal shape YYYY-MM.
func IsMonthKey(s string) bool {
	return monthKeyRegex.MatchString(s)
}

// ParseDate parses a calendar date or timestamp and truncates it to
// midnight UTC of the calendar day written in the input.
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
