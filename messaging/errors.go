package messaging

import "github.com/pkg/errors"

// Validation and lookup failures returned by the messaging operations. Store
// failures are returned wrapped, use errors.Cause to reach the driver error.
var (
	ErrMissingParticipant = errors.New("sender and receiver are required")
	ErrMissingRole        = errors.New("sender role is required")
	ErrInvalidRole        = errors.New("sender role is not recognised")
	ErrEmptyContent       = errors.New("message content is required")
	ErrInvalidID          = errors.New("identifier is not a valid object id")
	ErrInvalidRevision    = errors.New("revision must be positive")
	ErrChatroomNotFound   = errors.New("chatroom not found")
	ErrMessageNotFound    = errors.New("message not found")
	ErrRevisionConflict   = errors.New("message was changed since it was read")
)

// IsValidation reports whether err is caused by bad caller input rather than the store
func IsValidation(err error) bool {
	switch errors.Cause(err) {
	case ErrMissingParticipant, ErrMissingRole, ErrInvalidRole, ErrEmptyContent, ErrInvalidID, ErrInvalidRevision:
		return true
	}
	return false
}
