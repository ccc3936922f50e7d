package entities

import "time"

type AlertStatus string

const (
	AlertPending   AlertStatus = "pending"
	AlertResolved  AlertStatus = "resolved"
	AlertDismissed AlertStatus = "dismissed"
)

// Entity kinds an alert can be scoped to.
const (
	EntityLot         = "lot"
	EntitySeedVariety = "seed_variety"
	EntityPremise     = "premise"
)

// Alert records a triggered threshold rule for one entity. At most one
// pending alert exists per (entity_type, entity_id, rule_id).
type Alert struct {
	AlertID        uint           `gorm:"primaryKey" json:"alert_id"`
	FirmID         uint           `gorm:"index" json:"firm_id"`
	PremiseID      *uint          `gorm:"index" json:"premise_id,omitempty"`
	EntityType     string         `gorm:"size:32;index:idx_alert_scope" json:"entity_type"`
	EntityID       uint           `gorm:"index:idx_alert_scope" json:"entity_id"`
	Domain         string         `gorm:"size:16;index" json:"domain"` // seed|soil|rainfall|pasture
	RuleID         string         `gorm:"size:64;index:idx_alert_scope" json:"rule_id"`
	Priority       string         `gorm:"size:8" json:"priority"`
	Status         AlertStatus    `gorm:"size:16;index" json:"status"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Recommendation string         `json:"recommendation"`
	Metadata       map[string]any `gorm:"serializer:json" json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	Resolution     string         `json:"resolution,omitempty"`
}

func (a *Alert) IsPending() bool { return a.Status == AlertPending }
