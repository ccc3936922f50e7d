package serviceImp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agromonitor/database/dbtest"
	"agromonitor/entities"
	catalog "agromonitor/pkg/catalog/repository"
	catalogImp "agromonitor/pkg/catalog/repositoryImp"
	catalogsvc "agromonitor/pkg/catalog/service"
	"agromonitor/pkg/measure/repositoryImp"
	"agromonitor/pkg/measure/service"
)

func f(v float64) *float64 { return &v }

type fixture struct {
	svc     service.MeasureService
	firm    *entities.Firm
	premise *entities.Premise
	lot     *entities.Lot
	variety *entities.SeedVariety
}

func setup(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	db := dbtest.New(t)
	cat := catalogImp.New(db)

	fx := fixture{
		firm: &entities.Firm{Name: "Los Ceibos"},
	}
	require.NoError(t, cat.CreateFirm(ctx, fx.firm))
	fx.premise = &entities.Premise{FirmID: fx.firm.FirmID, Name: "Casco"}
	require.NoError(t, cat.CreatePremise(ctx, fx.premise))
	fx.lot = &entities.Lot{PremiseID: fx.premise.PremiseID, Name: "Potrero 3"}
	require.NoError(t, cat.CreateLot(ctx, fx.lot))
	fx.variety = &entities.SeedVariety{FirmID: fx.firm.FirmID, Species: "Raigrás", Name: "LE 284"}
	require.NoError(t, cat.CreateSeedVariety(ctx, fx.variety))

	s := NewMeasureService(repositoryImp.New(db), cat).(*measureSvc)
	s.now = func() time.Time { return time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC) }
	fx.svc = s
	return fx
}

func TestRecordSoilTakesFirmFromLot(t *testing.T) {
	fx := setup(t)
	m := &entities.SoilAnalysis{FirmID: 999, LotID: fx.lot.LotID, PH: f(6.1), Phosphorus: f(12)}
	require.NoError(t, fx.svc.RecordSoil(context.Background(), m))

	assert.Equal(t, fx.firm.FirmID, m.FirmID)
	assert.Equal(t, 2026, m.Date.Year(), "missing date defaults to now")

	hist, obj, err := fx.svc.SoilHistory(context.Background(), fx.lot.LotID)
	require.NoError(t, err)
	assert.Nil(t, obj)
	require.Len(t, hist, 1)
	assert.InDelta(t, 12, *hist[0].Phosphorus, 1e-9)
}

func TestRecordSeedRejectsOutOfRangePercent(t *testing.T) {
	fx := setup(t)
	err := fx.svc.RecordSeed(context.Background(), &entities.SeedAnalysis{
		SeedVarietyID: fx.variety.SeedVarietyID,
		Germination:   f(104),
	})
	assert.ErrorIs(t, err, service.ErrInvalid)
}

func TestRecordUnknownEntity(t *testing.T) {
	fx := setup(t)
	err := fx.svc.RecordPasture(context.Background(), &entities.PastureReading{LotID: 4242, HeightCM: f(8)})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestRecordRainfallRequiresAmount(t *testing.T) {
	fx := setup(t)
	err := fx.svc.RecordRainfall(context.Background(), &entities.RainfallRecord{PremiseID: fx.premise.PremiseID})
	assert.ErrorIs(t, err, service.ErrInvalid)

	err = fx.svc.RecordRainfall(context.Background(), &entities.RainfallRecord{PremiseID: fx.premise.PremiseID, MM: f(0)})
	assert.NoError(t, err, "a dry day is a valid record")
}

func TestSetSoilObjectiveUpserts(t *testing.T) {
	fx := setup(t)
	ctx := context.Background()
	require.NoError(t, fx.svc.SetSoilObjective(ctx, &entities.SoilObjective{LotID: fx.lot.LotID, Phosphorus: f(15)}))
	require.NoError(t, fx.svc.SetSoilObjective(ctx, &entities.SoilObjective{LotID: fx.lot.LotID, Phosphorus: f(18)}))
}

func TestOtherFirmReadsAsNotFound(t *testing.T) {
	fx := setup(t)
	ctx := catalogsvc.WithFirm(context.Background(), fx.firm.FirmID+1)

	err := fx.svc.RecordSoil(ctx, &entities.SoilAnalysis{LotID: fx.lot.LotID, PH: f(6)})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	err = fx.svc.RecordRainfall(ctx, &entities.RainfallRecord{PremiseID: fx.premise.PremiseID, MM: f(10)})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	err = fx.svc.RecordSeed(ctx, &entities.SeedAnalysis{SeedVarietyID: fx.variety.SeedVarietyID})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	err = fx.svc.SetSoilObjective(ctx, &entities.SoilObjective{LotID: fx.lot.LotID})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = fx.svc.RainfallHistory(ctx, fx.premise.PremiseID, 0)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	// the owning firm is unaffected
	own := catalogsvc.WithFirm(context.Background(), fx.firm.FirmID)
	require.NoError(t, fx.svc.RecordPasture(own, &entities.PastureReading{LotID: fx.lot.LotID, Date: time.Now(), HeightCM: f(8)}))
	list, err := fx.svc.PastureHistory(own, fx.lot.LotID, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
