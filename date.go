package tex2site

import (
	"fmt"
	"time"

	"github.com/texpub/tex2site/internal/dateutil"
)

// ResolveDate turns a --date value into the date shown on the page.
// "" and "auto" give now as YYYY-MM-DD; "auto:FORMAT" formats now (see
// dateutil.ParseDateFormat for tokens and presets); any other value must be
// a YYYY-MM-DD date and is returned unchanged.
//
// The time parameter allows injecting a fixed time for testing.
func ResolveDate(value string, now time.Time) (string, error) {
	date, err := dateutil.ResolveDate(value, now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return date, nil
}
