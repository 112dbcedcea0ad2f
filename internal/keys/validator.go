package keys

import "strings"

const (
	keyLength     = 17
	keySegments   = 3
	segmentLength = 5
	separator     = "-"
)

// IsValidKey reports whether s has the AAAAA-BBBBB-CCCCC shape.
// No trimming or case folding is done; callers pass the raw value.
func IsValidKey(s string) bool {
	if len(s) != keyLength {
		return false
	}

	parts := strings.Split(s, separator)
	if len(parts) != keySegments {
		return false
	}

	for _, part := range parts {
		if len(part) != segmentLength {
			return false
		}
	}

	return true
}
