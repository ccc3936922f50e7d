// Package rules holds the threshold rule catalogs for every monitored domain.
//
// A rule is immutable once its Registry is built. Validation never fails on
// missing data: a nil field or an unset objective simply means the rule does
// not fire.
package rules

import (
	"fmt"
	"math"
)

const (
	DomainSeed     = "seed"
	DomainSoil     = "soil"
	DomainRainfall = "rainfall"
	DomainPasture  = "pasture"
)

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Rank orders priorities low < medium < high. Unknown values rank lowest.
func (p Priority) Rank() int {
	switch p {
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	}
	return 0
}

// Message is the human readable part of an alert.
type Message struct {
	Title          string
	Description    string
	Recommendation string
}

// Rule describes one alerting concern over a measurement view M.
type Rule[M any] struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Priority    Priority
	Validate    func(m M) bool
	Build       func(m M, entityName string) Message
	// Details returns the triggering values, thresholds and derived numbers
	// stored in the alert metadata.
	Details func(m M) map[string]any
}

// Fires reports whether the rule is enabled and its predicate holds.
func (r Rule[M]) Fires(m M) bool {
	return r.Enabled && r.Validate != nil && r.Validate(m)
}

// Table is an ordered catalog of rules with unique identifiers.
type Table[M any] struct {
	domain string
	order  []string
	byID   map[string]Rule[M]
}

func NewTable[M any](domain string, rs ...Rule[M]) (Table[M], error) {
	t := Table[M]{domain: domain, byID: make(map[string]Rule[M], len(rs))}
	for _, r := range rs {
		if r.ID == "" {
			return Table[M]{}, fmt.Errorf("%s: rule without id", domain)
		}
		if _, dup := t.byID[r.ID]; dup {
			return Table[M]{}, fmt.Errorf("%s: duplicate rule id %q", domain, r.ID)
		}
		t.byID[r.ID] = r
		t.order = append(t.order, r.ID)
	}
	return t, nil
}

func (t Table[M]) Domain() string { return t.domain }

func (t Table[M]) Get(id string) (Rule[M], bool) {
	r, ok := t.byID[id]
	return r, ok
}

// IDs returns rule identifiers in declaration order.
func (t Table[M]) IDs() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t Table[M]) Len() int { return len(t.order) }

// value helpers shared by the catalogs

func below(v *float64, limit float64) bool { return v != nil && *v < limit }

func above(v *float64, limit float64) bool { return v != nil && *v > limit }

func val(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
