package booking

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("booking not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrInternalConflict = errors.New("overlapping booking exists")
	ErrExternalConflict = errors.New("overlaps external OTA calendar")
)
