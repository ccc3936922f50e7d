package entities

import "gorm.io/gorm"

const (
	FertilizationPlanned = "planned"
	FertilizationApplied = "applied"
	FertilizationSkipped = "skipped"
)

// Fertilization is a planned or applied nutrient application on a lot.
type Fertilization struct {
	gorm.Model           // ID, CreatedAt, UpdatedAt, DeletedAt
	FirmID     uint     `json:"firm_id" gorm:"index"`
	LotID      uint     `json:"lot_id" gorm:"index"`
	Date       string   `json:"date" gorm:"index"`   // YYYY-MM-DD
	Product    string   `json:"product"`             // e.g. 18-46-0, urea
	Nutrients  string   `json:"nutrients"`           // P,K,N,S covered by the product
	DoseKgHa   *float64 `json:"dose_kg_ha"`
	Notes      string   `json:"notes"`
	Status     string   `json:"status" gorm:"index"` // planned|applied|skipped
	AppliedOn  *string  `json:"applied_on"`          // YYYY-MM-DD
}
