package vehicle

import "time"

const (
	StatusAvailable = "available"
	StatusRented    = "rented"
	StatusWorkshop  = "workshop"
	StatusRetired   = "retired"
)

type Vehicle struct {
	ID          int64  `gorm:"primaryKey"`
	CompanyID   int64  `gorm:"column:company_id;not null;uniqueIndex:idx_vehicles_company_plate"`
	PlateNumber string `gorm:"column:plate_number;not null;uniqueIndex:idx_vehicles_company_plate"`

	Make         string `gorm:"column:make"`
	Model        string `gorm:"column:model"`
	Year         int    `gorm:"column:year"`
	Status       string `gorm:"column:status;default:available"`
	AssignedTo   *int64 `gorm:"column:assigned_to"`
	DepartmentID *int64 `gorm:"column:department_id;index"`

	RegistrationExpiry *time.Time `gorm:"column:registration_expiry;type:date"`
	InsuranceExpiry    *time.Time `gorm:"column:insurance_expiry;type:date"`
	InspectionExpiry   *time.Time `gorm:"column:inspection_expiry;type:date"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
