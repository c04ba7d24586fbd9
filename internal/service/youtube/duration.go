package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

// fallbackDuration is returned for any duration string that does not match
// the PT[nH][nM][nS] shape. Malformed input is not an error.
const fallbackDuration = "0:00"

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// FormatDuration converts an ISO-8601 duration of the restricted
// PT[nH][nM][nS] form into a display string: H:MM:SS when hours are present,
// M:SS otherwise. Missing components count as zero.
func FormatDuration(iso string) string {
	match := durationPattern.FindStringSubmatch(iso)
	if match == nil {
		return fallbackDuration
	}

	hours := atoiDefault(match[1])
	minutes := atoiDefault(match[2])
	seconds := atoiDefault(match[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

func atoiDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
