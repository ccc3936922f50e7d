// Package numeric is the single place where loosely typed numeric input
// (JSON numbers, numeric strings, spreadsheet cells) becomes *float64.
package numeric

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse converts a numeric string into a float. Both "12.5" and "12,5" are
// accepted. Empty, NaN and infinite values report ok=false.
func Parse(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Ptr returns the parsed value or nil.
func Ptr(s string) *float64 {
	v, ok := Parse(s)
	if !ok {
		return nil
	}
	return &v
}

// Opt is an optional number that unmarshals from a JSON number, a numeric
// string, null or "". Anything unparseable is treated as absent.
type Opt struct {
	v     float64
	valid bool
}

func Of(v float64) Opt { return Opt{v: v, valid: true} }

func (o Opt) Valid() bool { return o.valid }

// Float returns nil when the value is absent.
func (o Opt) Float() *float64 {
	if !o.valid {
		return nil
	}
	v := o.v
	return &v
}

func (o *Opt) UnmarshalJSON(b []byte) error {
	*o = Opt{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("numeric: %w", err)
		}
		if v, ok := Parse(s); ok {
			*o = Of(v)
		}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return nil
	}
	if v, ok := Parse(n.String()); ok {
		*o = Of(v)
	}
	return nil
}

func (o Opt) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}
