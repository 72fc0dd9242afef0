package visit

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Decimal is a money field as typed into a form. It accepts a JSON string or
// number and keeps the text; Value parses it.
type Decimal string

func (d *Decimal) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*d = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	*d = Decimal(b)
	return nil
}

// Value returns the parsed amount. Empty, malformed and non-finite input
// read as 0.
func (d Decimal) Value() float64 {
	return ParseAmount(string(d))
}

// ParseAmount parses s leniently, the way the billing form does.
func ParseAmount(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// roundCents rounds half away from zero to two decimals.
func roundCents(f float64) float64 {
	return math.Round(f*100) / 100
}
