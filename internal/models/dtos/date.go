package dtos

import (
	"encoding/json"
	"fmt"
	"time"
)

// FlexibleDate accepts either a calendar date ("2006-01-02") or an RFC 3339
// timestamp. Dates are interpreted as midnight UTC.
type FlexibleDate struct {
	time.Time
}

func (d *FlexibleDate) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", raw)
	}
	d.Time = t.UTC()
	return nil
}

func (d FlexibleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}
