package entities

import "time"

// Firm is the tenant that owns premises and seed stock.
type Firm struct {
	FirmID    uint   `gorm:"primaryKey" json:"firm_id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Premise struct {
	PremiseID  uint    `gorm:"primaryKey" json:"premise_id"`
	FirmID     uint    `gorm:"index" json:"firm_id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	DicoseCode string  `json:"dicose_code"`
	AreaHa     float64 `json:"area_ha"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Lot struct {
	LotID     uint    `gorm:"primaryKey" json:"lot_id"`
	FirmID    uint    `gorm:"index" json:"firm_id"`
	PremiseID uint    `gorm:"index" json:"premise_id"`
	Name      string  `json:"name"`
	AreaHa    float64 `json:"area_ha"`
	LandUse   string  `json:"land_use"` // agricultural|livestock|mixed
	CreatedAt time.Time
	UpdatedAt time.Time
}

type SeedVariety struct {
	SeedVarietyID uint   `gorm:"primaryKey" json:"seed_variety_id"`
	FirmID        uint   `gorm:"index" json:"firm_id"`
	Species       string `json:"species"`
	Name          string `json:"name"`
	BatchCode     string `json:"batch_code"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
