package service

import (
	"errors"
	"regexp"

	"github.com/SergeyBogomolovv/publika-insight/internal/entities"
	"github.com/SergeyBogomolovv/publika-insight/pkg/utils"
	"github.com/go-playground/validator/v10"
)

var emailPattern = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

var fieldMessages = map[string]map[string]string{
	"full_name":     {"required": "full name is required"},
	"email":         {"required": "email is required", "basic_email": "invalid email format"},
	"institution":   {"required": "institution is required"},
	"journal_title": {"required": "journal title is required"},
	"topic":         {"required": "journal topic must be selected"},
	"level":         {"required": "journal level must be selected"},
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(utils.JSONTagName)
	// validator'овский email строже, чем нужно: принимаем всё вида x@y.z
	v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate проверяет форму и возвращает ошибку для каждого невалидного поля
func (s *orderService) Validate(form entities.OrderForm) entities.FieldErrors {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return entities.FieldErrors{"form": err.Error()}
	}

	fields := make(entities.FieldErrors, len(ve))
	for _, fe := range ve {
		msg, ok := fieldMessages[fe.Field()][fe.Tag()]
		if !ok {
			msg = "invalid value"
		}
		fields[fe.Field()] = msg
	}
	return fields
}
