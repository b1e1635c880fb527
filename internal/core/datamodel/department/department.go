package department

import "time"

type Department struct {
	ID        int64  `gorm:"primaryKey"`
	CompanyID int64  `gorm:"column:company_id;not null;uniqueIndex:idx_departments_company_name"`
	Name      string `gorm:"column:name;not null;uniqueIndex:idx_departments_company_name"`
	NameAr    string `gorm:"column:name_ar"`
	ManagerID *int64 `gorm:"column:manager_id"`

	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}
