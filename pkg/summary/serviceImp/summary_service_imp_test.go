package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromonitor/database/dbtest"
	"agromonitor/entities"
	alertImp "agromonitor/pkg/alert/repositoryImp"
	catalog "agromonitor/pkg/catalog/repository"
	catalogImp "agromonitor/pkg/catalog/repositoryImp"
	catalogsvcImp "agromonitor/pkg/catalog/serviceImp"
	measureImp "agromonitor/pkg/measure/repositoryImp"
	"agromonitor/pkg/quality"
	"agromonitor/pkg/summary/service"
)

func f(v float64) *float64 { return &v }

func TestBuildSummary(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	cat := catalogImp.New(db)
	measures := measureImp.New(db)
	alerts := alertImp.New(db)

	firm := &entities.Firm{Name: "La Paloma"}
	require.NoError(t, cat.CreateFirm(ctx, firm))
	premise := &entities.Premise{FirmID: firm.FirmID, Name: "Sur"}
	require.NoError(t, cat.CreatePremise(ctx, premise))
	measured := &entities.Lot{PremiseID: premise.PremiseID, Name: "Bajo"}
	require.NoError(t, cat.CreateLot(ctx, measured))
	empty := &entities.Lot{PremiseID: premise.PremiseID, Name: "Loma"}
	require.NoError(t, cat.CreateLot(ctx, empty))
	variety := &entities.SeedVariety{FirmID: firm.FirmID, Name: "INIA Aurora"}
	require.NoError(t, cat.CreateSeedVariety(ctx, variety))

	day := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, measures.CreatePasture(ctx, &entities.PastureReading{FirmID: firm.FirmID, LotID: measured.LotID, Date: day, HeightCM: f(4)}))
	require.NoError(t, measures.CreateSeed(ctx, &entities.SeedAnalysis{
		FirmID: firm.FirmID, SeedVarietyID: variety.SeedVarietyID, Date: day,
		Germination: f(90), Purity: f(99), Moisture: f(11), Tetrazolium: f(92),
	}))

	pid := premise.PremiseID
	for _, a := range []*entities.Alert{
		{FirmID: firm.FirmID, PremiseID: &pid, EntityType: entities.EntityLot, EntityID: measured.LotID, Domain: "pasture", RuleID: "pastura_sobrepastoreo", Priority: "high"},
		{FirmID: firm.FirmID, EntityType: entities.EntitySeedVariety, EntityID: variety.SeedVarietyID, Domain: "seed", RuleID: "pureza_baja", Priority: "medium"},
	} {
		_, _, err := alerts.CreateIfAbsent(ctx, a)
		require.NoError(t, err)
	}

	svc := New(alerts, catalogsvcImp.New(cat, 0), measures)

	sum, err := svc.BuildSummary(ctx, service.Scope{FirmID: firm.FirmID})
	require.NoError(t, err)
	assert.Len(t, sum.ActiveAlerts, 2)
	assert.Equal(t, map[string]int{"high": 1, "medium": 1, "low": 0}, sum.Counts)
	require.Len(t, sum.Lots, 1, "lot without measurements is omitted")
	assert.Equal(t, measured.LotID, sum.Lots[0].LotID)
	assert.Equal(t, 1, sum.Lots[0].AlertCount)
	require.Len(t, sum.SeedVarieties, 1)
	assert.Equal(t, quality.Excellent, sum.SeedVarieties[0].Quality.Band)
	assert.Empty(t, sum.Premises)

	lotSum, err := svc.BuildSummary(ctx, service.Scope{FirmID: firm.FirmID, LotID: &empty.LotID})
	require.NoError(t, err)
	assert.Empty(t, lotSum.ActiveAlerts)
	assert.Empty(t, lotSum.Lots)
	assert.Empty(t, lotSum.SeedVarieties)

	_, err = svc.BuildSummary(ctx, service.Scope{FirmID: firm.FirmID + 1, LotID: &measured.LotID})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}
