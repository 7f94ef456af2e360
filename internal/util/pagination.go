package util

import (
	"encoding/base64"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/clubconnect/internal/constant"
	"github.com/ferdian3456/clubconnect/internal/model"
)

func ValidateLimit(limit int) error {
	if limit <= 0 {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Limit must be greater than 0",
			Param:   "limit",
		}
	} else if limit > constant.MAX_LIMIT {
		return &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Limit is exceeded max limit: %d", constant.MAX_LIMIT),
			Param:   "limit",
		}
	}

	return nil
}

// EncodeCursor serializes a cursor struct into an opaque url-safe string.
func EncodeCursor(cursor interface{}) (string, error) {
	b, err := sonic.Marshal(cursor)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DecodeCursor is the inverse of EncodeCursor. An empty string leaves dst untouched.
func DecodeCursor(cursor string, dst interface{}) error {
	if cursor == "" {
		return nil
	}

	invalid := &model.ValidationError{
		Code:    constant.ERR_VALIDATION_CODE,
		Message: "Cursor is invalid",
		Param:   "cursor",
	}

	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return invalid
	}

	err = sonic.Unmarshal(b, dst)
	if err != nil {
		return invalid
	}

	return nil
}
