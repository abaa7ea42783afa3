package utils

import (
	"fmt"
	"time"
)

const accountNumberPrefix = "ACC-"

// FormatAccountNumber renders a sequence number as ACC- followed by at least
// six zero-padded digits.
func FormatAccountNumber(seq int64) string {
	return fmt.Sprintf("%s%06d", accountNumberPrefix, seq)
}

// ISODate formats t as YYYY-MM-DD in t's location.
func ISODate(t time.Time) string {
	return t.Format(time.DateOnly)
}
