package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable(DomainSeed,
		Rule[SeedValues]{ID: "a"},
		Rule[SeedValues]{ID: "a"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	_, err = NewTable[SeedValues](DomainSeed, Rule[SeedValues]{})
	require.Error(t, err)
}

func TestRegistryCatalog(t *testing.T) {
	reg := Default()
	assert.Equal(t, 7, reg.Seed.Len())
	assert.Equal(t, 7, reg.Soil.Len())
	assert.Equal(t, 3, reg.Rainfall.Len())
	assert.Equal(t, 2, reg.Pasture.Len())

	cat := reg.Catalog()
	assert.Len(t, cat, 19)
	seen := map[string]bool{}
	for _, info := range cat {
		key := info.Domain + "." + info.ID
		assert.False(t, seen[key], "duplicate %s", key)
		seen[key] = true
		assert.True(t, info.Enabled)
	}
}

func TestCustomThresholdsDoNotLeak(t *testing.T) {
	th := DefaultThresholds()
	th.Seed.GerminationMin = 95
	custom, err := NewRegistry(th)
	require.NoError(t, err)

	in := SeedValues{Germination: f(90)}
	r, _ := custom.Seed.Get(SeedLowGermination)
	assert.True(t, r.Fires(in))

	def, _ := Default().Seed.Get(SeedLowGermination)
	assert.False(t, def.Fires(in))
}

func TestPriorityRank(t *testing.T) {
	assert.Less(t, Low.Rank(), Medium.Rank())
	assert.Less(t, Medium.Rank(), High.Rank())
	assert.Equal(t, 0, Priority("urgent").Rank())
}

func TestPastureAndRainfallRules(t *testing.T) {
	reg := Default()
	over, _ := reg.Pasture.Get(PastureOvergrazed)
	under, _ := reg.Pasture.Get(PastureUndergrazed)
	assert.True(t, over.Fires(PastureValues{HeightCM: f(4)}))
	assert.False(t, over.Fires(PastureValues{HeightCM: f(5)}))
	assert.True(t, under.Fires(PastureValues{HeightCM: f(26)}))
	assert.False(t, under.Fires(PastureValues{}))

	deficit, _ := reg.Rainfall.Get(RainfallDeficit)
	assert.True(t, deficit.Fires(RainfallValues{DeficitWindow: f(10)}))
	assert.False(t, deficit.Fires(RainfallValues{DeficitWindow: f(25)}))
	assert.False(t, deficit.Fires(RainfallValues{}), "no recent data is not a drought")
}
