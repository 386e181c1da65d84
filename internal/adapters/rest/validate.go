package rest

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ewilliams-labs/reelvibe/internal/core/domain"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("query"); name != "" {
				return name
			}
			return strings.ToLower(fld.Name)
		})
	})
	return validate
}

type titleQuery struct {
	Title string `query:"title" validate:"required,max=200"`
	Year  string `query:"year" validate:"omitempty,len=4,numeric"`
}

type searchQuery struct {
	Query string `query:"q" validate:"required,max=200"`
	Page  int    `query:"page" validate:"min=0,max=100"`
}

type historyQuery struct {
	Limit int `query:"limit" validate:"min=0,max=100"`
}

func parseTitleQuery(values url.Values) (titleQuery, error) {
	q := titleQuery{
		Title: strings.TrimSpace(values.Get("title")),
		Year:  strings.TrimSpace(values.Get("year")),
	}
	return q, validateStruct(q)
}

func parseSearchQuery(values url.Values) (searchQuery, error) {
	page, err := optionalInt(values, "page")
	if err != nil {
		return searchQuery{}, err
	}
	q := searchQuery{Query: strings.TrimSpace(values.Get("q")), Page: page}
	return q, validateStruct(q)
}

func parseHistoryQuery(values url.Values) (historyQuery, error) {
	limit, err := optionalInt(values, "limit")
	if err != nil {
		return historyQuery{}, err
	}
	q := historyQuery{Limit: limit}
	return q, validateStruct(q)
}

func optionalInt(values url.Values, name string) (int, error) {
	raw := strings.TrimSpace(values.Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalid(name + " must be an integer")
	}
	return n, nil
}

// validateStruct returns an InvalidInput error describing the first failed rule.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errInvalid(err.Error())
	}
	return errInvalid(fieldMessage(fieldErrs[0]))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "numeric":
		return field + " must be numeric"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// errInvalid builds the InvalidInput failure for a rejected query.
func errInvalid(message string) error {
	return domain.InvalidInput("rest", message)
}
