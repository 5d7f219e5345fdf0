package localtime

import (
	"fmt"
	"time"
)

// Layout is the wire format for timestamps: ISO-8601 local date-time
// without a zone designator, as the gateway sends and expects.
const Layout = "2006-01-02T15:04:05"

// LocalDateTime is a time.Time that marshals to and from the zone-less
// ISO-8601 layout used across the HTTP API.
type LocalDateTime struct {
	time.Time
}

func Of(t time.Time) LocalDateTime {
	return LocalDateTime{Time: t}
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(Layout) + `"`), nil
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid datetime %s", s)
	}
	parsed, err := time.Parse(Layout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
