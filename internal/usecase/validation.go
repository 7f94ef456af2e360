package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
)

// validateText trims value and checks it is present and at most max runes long.
func validateText(value string, param string, label string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return value, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("%s is required to not be empty", label),
			Param:   param,
		}
	} else if max > 0 && utf8.RuneCountInString(value) > max {
		return value, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("%s must be at most %d characters", label, max),
			Param:   param,
		}
	}

	return value, nil
}

func validateOptionalText(value *string, param string, label string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}

	if utf8.RuneCountInString(trimmed) > max {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("%s must be at most %d characters", label, max),
			Param:   param,
		}
	}

	return &trimmed, nil
}
