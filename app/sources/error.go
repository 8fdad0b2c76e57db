package sources

import (
	log "github.com/go-pkgz/lgr"

	"github.com/umputun/jobsrc/app/enums"
)

// Error is the normalized failure of a job source operation
type Error struct {
	Kind    enums.ErrorKind
	Message string // operation message followed by the cause, safe to show to the caller
	Err     error
}

// newError makes Error and logs it, authentication and validation failures are logged at debug level
func newError(kind enums.ErrorKind, msg string, err error) *Error {
	e := &Error{Kind: kind, Message: msg, Err: err}
	if err != nil {
		e.Message = msg + " " + err.Error()
	}
	switch kind {
	case enums.ErrorKindUnexpected:
		log.Printf("[ERROR] %s", e.Message)
	case enums.ErrorKindConflict, enums.ErrorKindNotFound:
		log.Printf("[WARN] %s", e.Message)
	default:
		log.Printf("[DEBUG] %s", e.Message)
	}
	return e
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }
