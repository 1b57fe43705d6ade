package vault

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// maxEchoBytes caps how much of an offending input is echoed into logs.
const maxEchoBytes = 256

// SanitizeInput strips control characters from untrusted input and caps its
// length so it can be echoed into a log line safely.
func SanitizeInput(s string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	for len(clean) > maxEchoBytes {
		_, size := utf8.DecodeLastRuneInString(clean)
		clean = clean[:len(clean)-size]
	}
	return clean
}

// logRejection records a structured security event for a rejected path.
// The event carries a sanitized echo of the input, never the raw bytes.
func (g *Guard) logRejection(reason Reason, input string) {
	g.log.Warn("path rejected",
		"event", "security",
		"event_id", uuid.NewString(),
		"reason", string(reason),
		"input", SanitizeInput(input),
	)
}
