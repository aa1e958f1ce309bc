package revocation

import (
	"fmt"
	"time"

	"github.com/Ibramnsh/backend-sidokepung/pkg/platform/sentinel"
)

// Clock returns the current time. Stores take one so tests can move time.
type Clock func() time.Time

// validateTTL rejects lifetimes that would revoke nothing.
func validateTTL(ttl time.Duration) error {
	if ttl > 0 {
		return nil
	}
	return fmt.Errorf("revocation ttl %s: %w", ttl, sentinel.ErrInvalidState)
}
