package ids

import "github.com/segmentio/ksuid"

// New returns a 27-character, lexicographically time-sortable identifier.
func New() string {
	return ksuid.New().String()
}
