package member

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// GymIDPrefix starts every generated gym ID.
const GymIDPrefix = "PP"

// GymIDLength is the length of a generated gym ID (prefix plus five digits).
const GymIDLength = len(GymIDPrefix) + 5

// GenerateGymID returns a prefix followed by a number in [10000, 99999].
// Collisions with existing members are possible; callers that care must check.
func GenerateGymID() string {
	return fmt.Sprintf("%s%d", GymIDPrefix, 10000+rand.IntN(90000))
}

// NormalizeGymID trims and upper-cases a gym ID as typed at the kiosk.
func NormalizeGymID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsGymIDFormat reports whether s has the shape of a generated gym ID.
func IsGymIDFormat(s string) bool {
	if len(s) != GymIDLength || !strings.HasPrefix(s, GymIDPrefix) {
		return false
	}
	for _, c := range s[len(GymIDPrefix):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s[len(GymIDPrefix)] != '0'
}
