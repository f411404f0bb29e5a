package cgrates

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator значение по умолчанию для отсутствующего поля.
type Generator func() any

func Constant(v any) Generator {
	return func() any { return v }
}

// Timestamp текущее время строкой (RFC3339, UTC).
func Timestamp() Generator {
	return func() any { return time.Now().UTC().Format(time.RFC3339) }
}

func RandomID() Generator {
	return func() any { return uuid.NewString() }
}

type Default struct {
	Field    string
	Generate Generator
}

// Rule a required-field check, run after defaults.
type Rule interface {
	Check(p Params) error
	Fields() []string
}

type requireFields []string

// Require each field must be present, checked in the given order.
func Require(fields ...string) Rule {
	return requireFields(fields)
}

func (r requireFields) Check(p Params) error {
	for _, field := range r {
		if !p.Has(field) {
			return &ValidationError{Field: field, Message: field + " is required"}
		}
	}
	return nil
}

func (r requireFields) Fields() []string {
	return r
}

type requireOneOf []string

// RequireOneOf at least one of fields must be present.
func RequireOneOf(fields ...string) Rule {
	return requireOneOf(fields)
}

func (r requireOneOf) Check(p Params) error {
	for _, field := range r {
		if p.Has(field) {
			return nil
		}
	}

	name := strings.Join(r, " or ")

	return &ValidationError{Field: name, Message: name + " is required."}
}

func (r requireOneOf) Fields() []string {
	return r
}
