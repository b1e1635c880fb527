package document

import "time"

const (
	TypeIqama         = "iqama"
	TypePassport      = "passport"
	TypeDrivingLicense = "driving_license"
	TypeWorkPermit    = "work_permit"
	TypeHealthCard    = "health_card"
	TypeContract      = "contract"
)

type Document struct {
	ID         int64  `gorm:"primaryKey"`
	CompanyID  int64  `gorm:"column:company_id;not null;index"`
	EmployeeID int64  `gorm:"column:employee_id;not null;index"`
	Type       string `gorm:"column:type;not null"`
	Number     string `gorm:"column:number"`
	Title      string `gorm:"column:title"`

	IssueDate  *time.Time `gorm:"column:issue_date;type:date"`
	ExpiryDate *time.Time `gorm:"column:expiry_date;type:date;index"`

	FileURL  *string `gorm:"column:file_url"`
	FileName *string `gorm:"column:file_name"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Document) TableName() string {
	return "documents"
}
