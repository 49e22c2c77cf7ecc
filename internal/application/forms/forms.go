// Package forms performs the client-side validation that blocks a
// submission before any network call is made: email shape, password of
// at least 6 characters, phone of at least 10 digits, required names.
package forms

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

var validate = validator.New()

// FieldErrors maps field names to human-readable messages.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, field+": "+msg)
	}
	return strings.Join(parts, "; ")
}

// RegisterForm is the sign-up form. Role and status are fixed by the
// form itself rather than user-supplied.
type RegisterForm struct {
	Name     string `validate:"required"`
	Surname  string `validate:"required"`
	Mail     string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	Phone    string `validate:"required,min=10"`
}

// LoginForm is the sign-in form.
type LoginForm struct {
	Mail     string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// ProjectForm is the create/edit project dialog.
type ProjectForm struct {
	Name string `validate:"required"`
	Date string `validate:"required"`
}

// TaskForm is the create/edit task dialog.
type TaskForm struct {
	Name        string              `validate:"required"`
	Description string              `validate:"-"`
	Status      entities.TaskStatus `validate:"required"`
}

// Validate checks a form value and returns field-keyed errors; a nil
// return means the form may be submitted.
func Validate(form interface{}) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	fieldErrs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fieldErrs[strings.ToLower(fe.Field())] = message(fe)
	}
	return fieldErrs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "min":
		if strings.EqualFold(fe.Field(), "password") {
			return "password must be at least " + fe.Param() + " characters"
		}
		return "must be at least " + fe.Param() + " characters"
	default:
		return "invalid value"
	}
}
