package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewID generates an opaque identifier of the form
// "<prefix>-<unix-millis>-<random-suffix>". The suffix is the first uuid
// group, which keeps ids short while making collisions within one
// millisecond a non-issue at simulation scale.
func NewID(prefix string) string {
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMilli(), suffix)
}
