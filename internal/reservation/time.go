package reservation

import "time"

// timeNow is swapped out in handler tests.
var timeNow = func() time.Time {
	return time.Now().UTC()
}
