package audit

import "time"

// Record is one append-only audit row. Rows are never updated or deleted;
// the actor user is never physically removed while records reference it.
type Record struct {
	ID         int64  `gorm:"primaryKey"`
	CompanyID  *int64 `gorm:"column:company_id;index"`
	ActorID    *int64 `gorm:"column:actor_id;index"`
	Action     string `gorm:"column:action;not null"`
	EntityType string `gorm:"column:entity_type;not null;index"`
	EntityID   int64  `gorm:"column:entity_id;not null"`
	EntityName string `gorm:"column:entity_name"`
	Details    string `gorm:"column:details"`

	PreviousData []byte `gorm:"column:previous_data;type:jsonb"`
	NewData      []byte `gorm:"column:new_data;type:jsonb"`

	IPAddress string    `gorm:"column:ip_address"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Record) TableName() string {
	return "audit_records"
}
