package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/piyush-pb/Personal-Finance-Tracker/internal/errors"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/models"
)

// TransactionInput is the raw, unvalidated shape of a transaction as
// received from a client.
type TransactionInput struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Date        string  `json:"date" validate:"required,calendar_date"`
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category" validate:"omitempty,category"`
}

// BudgetInput is the raw, unvalidated shape of a budget.
type BudgetInput struct {
	Category string  `json:"category" validate:"required,category"`
	Month    string  `json:"month" validate:"required,month_key"`
	Amount   float64 `json:"amount" validate:"gt=0"`
}

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
}

// ValidateTransaction checks in and returns the normalized fields. A
// missing category defaults to Other. Malformed input is reported through
// the returned field errors, never by panicking.
func ValidateTransaction(in TransactionInput) (models.TransactionFields, []apperrors.FieldError) {
	in.Description = strings.TrimSpace(in.Description)
	in.Date = strings.TrimSpace(in.Date)

	if fieldErrs := check(in); len(fieldErrs) > 0 {
		return models.TransactionFields{}, fieldErrs
	}

	date, _ := ParseDate(in.Date)
	category := models.Category(in.Category)
	if category == "" {
		category = models.CategoryOther
	}

	return models.TransactionFields{
		Amount:      in.Amount,
		Date:        date,
		Description: in.Description,
		Category:    category,
	}, nil
}

// ValidateBudget checks in and returns the normalized fields.
func ValidateBudget(in BudgetInput) (models.BudgetFields, []apperrors.FieldError) {
	in.Month = strings.TrimSpace(in.Month)

	if fieldErrs := check(in); len(fieldErrs) > 0 {
		return models.BudgetFields{}, fieldErrs
	}

	return models.BudgetFields{
		Category: models.Category(in.Category),
		Month:    in.Month,
		Amount:   in.Amount,
	}, nil
}

func check(in any) []apperrors.FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrs := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return fieldErrs
}

// FieldErrors converts a binding error produced by Gin into field errors.
// Errors that are not validation failures (for example malformed JSON)
// yield nil.
func FieldErrors(err error) []apperrors.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fieldErrs := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, apperrors.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: message(fe),
		})
	}
	return fieldErrs
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt", "gte":
		if field == "amount" {
			return "Amount must be positive"
		}
		return fmt.Sprintf("%s must be greater than %s", label(field), fe.Param())
	case "required":
		return label(field) + " is required"
	case "calendar_date":
		return "Invalid date"
	case "month_key":
		return "Month must be in YYYY-MM format"
	case "category":
		return "Invalid category: must be one of " + categoryList()
	}
	return fmt.Sprintf("%s failed %q validation", label(field), fe.Tag())
}

func label(field string) string {
	if field == "" {
		return field
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func categoryList() string {
	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
