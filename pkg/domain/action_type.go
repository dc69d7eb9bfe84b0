package domain

import (
	dErrors "laurel/pkg/domain-errors"
)

// ActionType keys the reputation action catalog. Unlike attestation types the
// catalog is admin-extensible, so only shape is validated here; catalog
// membership is checked by the reputation service.
type ActionType string

const maxActionTypeLength = 50

// ParseActionType constructs an ActionType from external input.
//
// Errors: returns CodeInvalidString for empty, oversized, or malformed values.
func ParseActionType(s string) (ActionType, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidString, "action type cannot be empty")
	}
	if len(s) > maxActionTypeLength {
		return "", dErrors.New(dErrors.CodeInvalidString, "action type too long")
	}
	for _, r := range s {
		if !isDIDRune(r) {
			return "", dErrors.New(dErrors.CodeInvalidString, "action type contains invalid characters")
		}
	}
	return ActionType(s), nil
}

func (a ActionType) String() string { return string(a) }
