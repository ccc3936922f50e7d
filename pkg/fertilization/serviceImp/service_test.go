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
	"agromonitor/pkg/fertilization/repositoryImp"
	svc "agromonitor/pkg/fertilization/service"
	measureImp "agromonitor/pkg/measure/repositoryImp"
)

func strp(s string) *string { return &s }

func TestApplyingFertilizationIsSeenByMeasureRepo(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	cat := catalogImp.New(db)
	firm := &entities.Firm{Name: "El Tala"}
	require.NoError(t, cat.CreateFirm(ctx, firm))
	premise := &entities.Premise{FirmID: firm.FirmID, Name: "Norte"}
	require.NoError(t, cat.CreatePremise(ctx, premise))
	lot := &entities.Lot{PremiseID: premise.PremiseID, Name: "Chacra 2"}
	require.NoError(t, cat.CreateLot(ctx, lot))

	s := New(repositoryImp.New(db), cat).(*service)
	s.now = func() time.Time { return time.Date(2026, 4, 20, 9, 0, 0, 0, time.UTC) }

	f := &entities.Fertilization{LotID: lot.LotID, Date: "2026-04-15", Product: "18-46-0", Nutrients: "N,P"}
	require.NoError(t, s.Create(ctx, f))
	assert.Equal(t, entities.FertilizationPlanned, f.Status)
	assert.Equal(t, firm.FirmID, f.FirmID)
	assert.Nil(t, f.AppliedOn)

	measures := measureImp.New(db)
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	applied, err := measures.FertilizationAppliedSince(ctx, lot.LotID, since)
	require.NoError(t, err)
	assert.False(t, applied, "planned does not count")

	out, err := s.UpdatePartial(ctx, f.ID, svc.FertilizationPatch{Status: strp(entities.FertilizationApplied)})
	require.NoError(t, err)
	require.NotNil(t, out.AppliedOn)
	assert.Equal(t, "2026-04-20", *out.AppliedOn)

	applied, err = measures.FertilizationAppliedSince(ctx, lot.LotID, since)
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestFertilizationValidation(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	s := New(repositoryImp.New(db), catalogImp.New(db))

	assert.ErrorIs(t, s.Create(ctx, &entities.Fertilization{LotID: 1}), svc.ErrInvalid)
	assert.ErrorIs(t, s.Create(ctx, &entities.Fertilization{LotID: 1, Date: "15/04/2026"}), svc.ErrInvalid)

	_, err := s.UpdatePartial(ctx, 77, svc.FertilizationPatch{})
	assert.ErrorIs(t, err, svc.ErrNotFound)
}

func TestFertilizationsOfOtherFirmAreHidden(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	cat := catalogImp.New(db)
	firm := &entities.Firm{Name: "San Pedro"}
	require.NoError(t, cat.CreateFirm(ctx, firm))
	premise := &entities.Premise{FirmID: firm.FirmID, Name: "Sur"}
	require.NoError(t, cat.CreatePremise(ctx, premise))
	lot := &entities.Lot{PremiseID: premise.PremiseID, Name: "Bajo"}
	require.NoError(t, cat.CreateLot(ctx, lot))

	s := New(repositoryImp.New(db), cat)
	f := &entities.Fertilization{LotID: lot.LotID, Date: "2026-04-15", Product: "Urea"}
	require.NoError(t, s.Create(ctx, f))

	other := catalogsvc.WithFirm(ctx, firm.FirmID+1)
	err := s.Create(other, &entities.Fertilization{LotID: lot.LotID, Date: "2026-04-16"})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = s.ListByLot(other, lot.LotID, nil, nil)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
	_, err = s.UpdatePartial(other, f.ID, svc.FertilizationPatch{Status: strp(entities.FertilizationApplied)})
	assert.ErrorIs(t, err, svc.ErrNotFound)

	list, err := s.ListByLot(catalogsvc.WithFirm(ctx, firm.FirmID), lot.LotID, nil, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
