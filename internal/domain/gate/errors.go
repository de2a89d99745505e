package gate

import (
	"errors"

	"github.com/okian/pitchgate/internal/domain/validation"
)

// Sentinels matched by *Rejection through errors.Is.
var (
	ErrMissingRequiredFields = validation.ErrMissingRequiredFields
	ErrInsufficientScore     = errors.New("insufficient score")
)
