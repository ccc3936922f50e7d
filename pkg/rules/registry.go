package rules

import "errors"

// Registry bundles the per-domain catalogs built from one Thresholds value.
// It is immutable and safe for concurrent use.
type Registry struct {
	Seed     Table[SeedValues]
	Soil     Table[SoilValues]
	Rainfall Table[RainfallValues]
	Pasture  Table[PastureValues]

	th Thresholds
}

func NewRegistry(th Thresholds) (*Registry, error) {
	seed, err1 := NewTable(DomainSeed, seedRules(th)...)
	soil, err2 := NewTable(DomainSoil, soilRules(th)...)
	rain, err3 := NewTable(DomainRainfall, rainfallRules(th)...)
	pasture, err4 := NewTable(DomainPasture, pastureRules(th)...)
	if err := errors.Join(err1, err2, err3, err4); err != nil {
		return nil, err
	}
	return &Registry{Seed: seed, Soil: soil, Rainfall: rain, Pasture: pasture, th: th}, nil
}

// Default builds the registry with the built-in thresholds.
func Default() *Registry {
	r, err := NewRegistry(DefaultThresholds())
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Thresholds() Thresholds { return r.th }

// RuleInfo is the static description of a rule, used for listings.
type RuleInfo struct {
	Domain      string   `json:"domain"`
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Enabled     bool     `json:"enabled"`
	Priority    Priority `json:"priority"`
}

func infos[M any](t Table[M]) []RuleInfo {
	out := make([]RuleInfo, 0, t.Len())
	for _, id := range t.IDs() {
		r, _ := t.Get(id)
		out = append(out, RuleInfo{Domain: t.Domain(), ID: r.ID, Name: r.Name, Description: r.Description, Enabled: r.Enabled, Priority: r.Priority})
	}
	return out
}

// Catalog lists every rule of every domain.
func (r *Registry) Catalog() []RuleInfo {
	var out []RuleInfo
	out = append(out, infos(r.Seed)...)
	out = append(out, infos(r.Soil)...)
	out = append(out, infos(r.Rainfall)...)
	out = append(out, infos(r.Pasture)...)
	return out
}
