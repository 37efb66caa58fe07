// Package ids generates correlation IDs used to tie a computeFlow request
// to its log lines. The ID is not attached to spans or cache entries.
package ids

import "github.com/google/uuid"

// New returns a fresh correlation ID.
func New() string {
	return uuid.NewString()
}
