package entities

import "time"

// Measurements are written by data entry and only read by the alert engine.
// Numeric fields stay nil when the value was not measured.

type SoilAnalysis struct {
	SoilAnalysisID uint      `gorm:"primaryKey" json:"soil_analysis_id"`
	FirmID         uint      `gorm:"index" json:"firm_id"`
	LotID          uint      `gorm:"index" json:"lot_id"`
	Date           time.Time `gorm:"index" json:"date"`
	PH             *float64  `json:"ph"`
	OrganicMatter  *float64  `json:"organic_matter_pct"`
	Phosphorus     *float64  `json:"phosphorus_ppm"`
	Potassium      *float64  `json:"potassium_meq"`
	Nitrogen       *float64  `json:"nitrogen_ppm"`
	Sulfur         *float64  `json:"sulfur_ppm"`
	Lab            string    `json:"lab"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time
}

// SoilObjective holds the per-lot nutrient targets the deficit rules compare against.
type SoilObjective struct {
	LotID      uint     `gorm:"primaryKey" json:"lot_id"`
	FirmID     uint     `gorm:"index" json:"firm_id"`
	Phosphorus *float64 `json:"phosphorus_ppm"`
	Potassium  *float64 `json:"potassium_meq"`
	Nitrogen   *float64 `json:"nitrogen_ppm"`
	Sulfur     *float64 `json:"sulfur_ppm"`
	UpdatedAt  time.Time
}

type SeedAnalysis struct {
	SeedAnalysisID uint      `gorm:"primaryKey" json:"seed_analysis_id"`
	FirmID         uint      `gorm:"index" json:"firm_id"`
	SeedVarietyID  uint      `gorm:"index" json:"seed_variety_id"`
	Date           time.Time `gorm:"index" json:"date"`
	Germination    *float64  `json:"germination_pct"`
	Purity         *float64  `json:"purity_pct"`
	Moisture       *float64  `json:"moisture_pct"`
	Tetrazolium    *float64  `json:"tetrazolium_pct"`
	Lab            string    `json:"lab"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time
}

type RainfallRecord struct {
	RainfallID uint      `gorm:"primaryKey" json:"rainfall_id"`
	FirmID     uint      `gorm:"index" json:"firm_id"`
	PremiseID  uint      `gorm:"index" json:"premise_id"`
	Date       time.Time `gorm:"index" json:"date"`
	MM         *float64  `json:"mm"`
	Station    string    `json:"station"`
	CreatedAt  time.Time
}

type PastureReading struct {
	PastureReadingID uint      `gorm:"primaryKey" json:"pasture_reading_id"`
	FirmID           uint      `gorm:"index" json:"firm_id"`
	LotID            uint      `gorm:"index" json:"lot_id"`
	Date             time.Time `gorm:"index" json:"date"`
	HeightCM         *float64  `json:"height_cm"`
	Method           string    `json:"method"` // ruler|plate_meter|visual
	Note             string    `json:"note"`
	CreatedAt        time.Time
}
