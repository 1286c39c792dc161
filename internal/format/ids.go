package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns an opaque record id: the current millisecond timestamp
// in base 36 plus a random suffix. Uniqueness is probabilistic, which is
// acceptable for this domain.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + suffix
}
