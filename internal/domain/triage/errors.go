package triage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput agrupa los errores de input del cliente. Nunca se "curan".
	ErrInvalidInput = errors.New("invalid input")

	errMissingSymptoms = fmt.Errorf("%w: symptoms are required", ErrInvalidInput)
	errMissingIssue    = fmt.Errorf("%w: selected issue is required", ErrInvalidInput)
	errInvalidRound    = fmt.Errorf("%w: round must be 1 or 2", ErrInvalidInput)
)
