package availability

import "errors"

// ErrInvalidRange rejects malformed date ranges before any overlap logic
// runs. Conflicts are not errors; they come back inside the Decision.
var ErrInvalidRange = errors.New("end_date must be after start_date")
