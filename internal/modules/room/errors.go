package room

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("room not found")
	ErrRoomLimitReached = errors.New("room limit for current plan reached")
)
