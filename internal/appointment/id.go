package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-petcare/internal/config"
)

// NewID returns "<unix-millis>-<6 hex chars>". The random part comes from a
// fresh UUID so ids created within the same millisecond still differ.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:config.IDSuffixLength]
	return fmt.Sprintf(config.FormatAppointment, now.UnixMilli(), suffix)
}
