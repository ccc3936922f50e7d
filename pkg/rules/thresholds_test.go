package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestLoadThresholdsEmptyPath(t *testing.T) {
	th, err := LoadThresholds("")
	require.NoError(t, err)
	assert.Equal(t, DefaultThresholds().Seed, th.Seed)
}

func TestLoadThresholdsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umbrales.csv")
	body := "key,value\n" +
		"# seed overrides\n" +
		"seed.germination_min,90\n" +
		"Soil.PH_Min,\"5,8\"\n" +
		"soil.pending_days,45\n" +
		"disable,seed.pureza_baja\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 90.0, th.Seed.GerminationMin)
	assert.Equal(t, 5.8, th.Soil.PHMin)
	assert.Equal(t, 45, th.Soil.PendingDays)
	assert.True(t, th.Disabled["seed.pureza_baja"])

	reg, err := NewRegistry(th)
	require.NoError(t, err)
	purity, _ := reg.Seed.Get(SeedLowPurity)
	assert.False(t, purity.Enabled)
	assert.False(t, purity.Fires(SeedValues{Purity: f(50)}))

	germ, _ := reg.Seed.Get(SeedLowGermination)
	assert.True(t, germ.Fires(SeedValues{Germination: f(88)}))
}

func TestLoadThresholdsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umbrales.xlsx")
	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	require.NoError(t, x.SetSheetRow(sheet, "A1", &[]any{"key", "value"}))
	require.NoError(t, x.SetSheetRow(sheet, "A2", &[]any{"rainfall.deficit_min_mm", 40}))
	require.NoError(t, x.SetSheetRow(sheet, "A3", &[]any{"pasture.min_height_cm", "6"}))
	require.NoError(t, x.SaveAs(path))
	require.NoError(t, x.Close())

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 40.0, th.Rainfall.DeficitMinMM)
	assert.Equal(t, 6.0, th.Pasture.MinHeightCM)
}

func TestLoadThresholdsReportsBadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "umbrales.csv")
	require.NoError(t, os.WriteFile(path, []byte("seed.purity_min,abc\nunknown.key,1\nseed.moisture_max,14\n"), 0o644))

	th, err := LoadThresholds(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
	assert.Contains(t, err.Error(), "unknown threshold key")
	assert.Equal(t, 14.0, th.Seed.MoistureMax, "valid rows still apply")
}

func TestLoadThresholdsUnsupportedExtension(t *testing.T) {
	_, err := LoadThresholds("umbrales.json")
	require.Error(t, err)
}

func TestSetIntegerRejectsFraction(t *testing.T) {
	th := DefaultThresholds()
	require.Error(t, th.Set("soil.pending_days", "10.5"))
	assert.Equal(t, 30, th.Soil.PendingDays)
}
