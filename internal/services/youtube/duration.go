package youtube

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// parseISODuration converts an ISO-8601 duration string as returned by the
// platform (for example "PT1H30M") into whole seconds. Year, month, and
// week designators never occur in video durations and are rejected.
func parseISODuration(value string) (int64, error) {
	s := strings.TrimSpace(value)
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("duration %q: missing P designator", value)
	}
	body := s[1:]
	if body == "" {
		return 0, fmt.Errorf("duration %q: empty", value)
	}

	var total int64
	inTime := false
	sawComponent := false
	digits := strings.Builder{}

	consume := func(unit int64) error {
		if digits.Len() == 0 {
			return errors.New("designator without a value")
		}
		n, err := strconv.ParseInt(digits.String(), 10, 64)
		if err != nil {
			return err
		}
		digits.Reset()
		total += n * unit
		sawComponent = true
		return nil
	}

	for _, r := range body {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == 'T':
			if inTime || digits.Len() != 0 {
				return 0, fmt.Errorf("duration %q: misplaced T designator", value)
			}
			inTime = true
		case r == 'D' && !inTime:
			if err := consume(86400); err != nil {
				return 0, fmt.Errorf("duration %q: %w", value, err)
			}
		case r == 'H' && inTime:
			if err := consume(3600); err != nil {
				return 0, fmt.Errorf("duration %q: %w", value, err)
			}
		case r == 'M' && inTime:
			if err := consume(60); err != nil {
				return 0, fmt.Errorf("duration %q: %w", value, err)
			}
		case r == 'S' && inTime:
			if err := consume(1); err != nil {
				return 0, fmt.Errorf("duration %q: %w", value, err)
			}
		default:
			return 0, fmt.Errorf("duration %q: unsupported designator %q", value, string(r))
		}
	}

	if digits.Len() != 0 {
		return 0, fmt.Errorf("duration %q: trailing digits without designator", value)
	}
	if !sawComponent {
		return 0, fmt.Errorf("duration %q: no components", value)
	}
	return total, nil
}
