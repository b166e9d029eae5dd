package services

import "errors"

var (
	// ErrNoTeam means no team could be resolved for the acting user.
	ErrNoTeam = errors.New("no team could be resolved for this user")

	// ErrForbidden is a hard authorization failure (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means a route-bound entity does not exist.
	ErrNotFound = errors.New("not found")
)

// SoftError is a domain failure the legacy wire contract reports with HTTP 200
// and a {success:false, error} body instead of an error status. Kept distinct
// from transport failures so both conventions survive.
type SoftError struct {
	Message string
}

func (e *SoftError) Error() string {
	return e.Message
}

func softErrorf(msg string) *SoftError {
	return &SoftError{Message: msg}
}

// AsSoftError reports whether err is a soft error and returns it.
func AsSoftError(err error) (*SoftError, bool) {
	var soft *SoftError
	if errors.As(err, &soft) {
		return soft, true
	}
	return nil, false
}
