package model

import "errors"

// ErrDuplicate is returned by repositories when an insert hits a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
	// State is the current state of the conflicting resource, set on conflicts.
	State    string `json:"state,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
