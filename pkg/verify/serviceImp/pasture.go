package serviceImp

import (
	"context"
	"fmt"

	"agromonitor/entities"
	"agromonitor/pkg/rules"
	"agromonitor/pkg/verify/service"
)

func (e *engine) verifyPasture(ctx context.Context, lot *entities.Lot) (*service.Outcome, error) {
	out := &service.Outcome{EntityType: entities.EntityLot, EntityID: lot.LotID}
	m, err := e.measures.LatestPasture(ctx, lot.LotID, lot.FirmID)
	if err != nil {
		return out, fmt.Errorf("latest pasture reading: %w", err)
	}
	if m == nil {
		return out, nil
	}
	out.Measurement = m
	v := rules.PastureValues{HeightCM: m.HeightCM}
	out.Created, err = evaluate(ctx, e, e.reg.Pasture, e.reg.Pasture.IDs(), v, lotScope(lot, m.PastureReadingID, m.Date))
	return out, err
}
