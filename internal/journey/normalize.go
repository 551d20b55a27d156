package journey

import (
	"errors"
	"fmt"
	"time"
)

// arriveByLayout is the wire format of the caller's arriveBy parameter.
const arriveByLayout = "20060102150405"

// ErrBadArriveBy is returned when arriveBy does not parse as YYYYMMDDHHMMSS.
var ErrBadArriveBy = errors.New("malformed arriveBy timestamp")

// NormalizeArrival shifts a weekend arrival to the following Monday,
// preserving the time of day. The HSL corridor served here has no
// weekend evening service, so Saturday moves forward two days and
// Sunday one. Weekday arrivals pass through unchanged.
func NormalizeArrival(arriveBy string) (string, error) {
	parsed, err := time.Parse(arriveByLayout, arriveBy)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrBadArriveBy, arriveBy)
	}

	switch parsed.Weekday() {
	case time.Saturday:
		parsed = parsed.AddDate(0, 0, 2)
	case time.Sunday:
		parsed = parsed.AddDate(0, 0, 1)
	}

	return parsed.Format(arriveByLayout), nil
}
