package numerology

import (
	"errors"
	"fmt"
)

// ErrNoMahadashaPeriod indicates a timeline lookup found no covering period.
// This is a caller-configuration problem (horizon too short), not bad input.
var ErrNoMahadashaPeriod = errors.New("numerology: no mahadasha period covers date")

// ValidationError reports malformed or out-of-range caller input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "numerology: " + e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
