package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func soilRule(t *testing.T, id string) Rule[SoilValues] {
	t.Helper()
	r, ok := Default().Soil.Get(id)
	require.True(t, ok, "rule %s not registered", id)
	return r
}

func TestSoilDeficit(t *testing.T) {
	targets := NutrientTargets{Phosphorus: f(20), Potassium: f(0.5), Nitrogen: f(30), Sulfur: f(10)}

	tests := []struct {
		name string
		rule string
		in   SoilValues
		want bool
	}{
		{"P at 75% of objective", SoilPhosphorusDeficit, SoilValues{Phosphorus: f(15), Objective: targets}, true},
		{"P at 80% of objective", SoilPhosphorusDeficit, SoilValues{Phosphorus: f(16), Objective: targets}, false},
		{"K below ratio", SoilPotassiumDeficit, SoilValues{Potassium: f(0.3), Objective: targets}, true},
		{"N at 70% of objective", SoilNitrogenDeficit, SoilValues{Nitrogen: f(21), Objective: targets}, false},
		{"N at 60% of objective", SoilNitrogenDeficit, SoilValues{Nitrogen: f(18), Objective: targets}, true},
		{"S below ratio", SoilSulfurDeficit, SoilValues{Sulfur: f(5), Objective: targets}, true},
		{"no objective configured", SoilPhosphorusDeficit, SoilValues{Phosphorus: f(1)}, false},
		{"zero objective", SoilPhosphorusDeficit, SoilValues{Phosphorus: f(1), Objective: NutrientTargets{Phosphorus: f(0)}}, false},
		{"no result", SoilPhosphorusDeficit, SoilValues{Objective: targets}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, soilRule(t, tt.rule).Fires(tt.in))
		})
	}
}

func TestSoilDeficitMessage(t *testing.T) {
	r := soilRule(t, SoilPhosphorusDeficit)
	in := SoilValues{Phosphorus: f(10), Objective: NutrientTargets{Phosphorus: f(20)}}
	msg := r.Build(in, "Potrero 4")
	assert.Contains(t, msg.Title, "fósforo")
	assert.Contains(t, msg.Title, "Potrero 4")

	d := r.Details(in)
	assert.Equal(t, 10.0, d["deficit"])
	assert.Equal(t, 0.5, d["ratio"])
	assert.Equal(t, High, r.Priority)
}

func TestSoilPH(t *testing.T) {
	r := soilRule(t, SoilCriticalPH)
	assert.True(t, r.Fires(SoilValues{PH: f(5.4)}))
	assert.False(t, r.Fires(SoilValues{PH: f(5.5)}))
	assert.False(t, r.Fires(SoilValues{PH: f(7.5)}))
	assert.True(t, r.Fires(SoilValues{PH: f(7.6)}))
	assert.False(t, r.Fires(SoilValues{}))

	assert.Contains(t, r.Build(SoilValues{PH: f(5)}, "L1").Title, "ácido")
	assert.Contains(t, r.Build(SoilValues{PH: f(8)}, "L1").Title, "alcalino")
}

func TestSoilOrganicMatter(t *testing.T) {
	r := soilRule(t, SoilLowOrganicMatter)
	assert.True(t, r.Fires(SoilValues{OrganicMatter: f(2.4)}))
	assert.False(t, r.Fires(SoilValues{OrganicMatter: f(2.5)}))
}

func TestFertilizationPending(t *testing.T) {
	r := soilRule(t, SoilFertilizationPending)
	targets := NutrientTargets{Phosphorus: f(20), Potassium: f(0.5), Nitrogen: f(30)}
	deficitK := SoilValues{Phosphorus: f(20), Potassium: f(0.2), Nitrogen: f(10), Objective: targets, DaysSinceAnalysis: 45}

	assert.True(t, r.Fires(deficitK))
	d := r.Details(deficitK)
	assert.Equal(t, "K", d["nutrient"], "potassium is reported before nitrogen")

	recent := deficitK
	recent.DaysSinceAnalysis = 30
	assert.False(t, r.Fires(recent), "exactly the day threshold does not fire")

	applied := deficitK
	applied.FertilizationApplied = true
	assert.False(t, r.Fires(applied))

	onlySulfur := SoilValues{Sulfur: f(1), Objective: NutrientTargets{Sulfur: f(10)}, DaysSinceAnalysis: 90}
	assert.False(t, r.Fires(onlySulfur), "sulfur is not part of the pending check")
}
