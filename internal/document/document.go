package document

import (
	"time"

	documentDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/document"
	"github.com/alfarhan/hr-fleet-management/internal/expiry"
)

type Document struct {
	ID         int64  `json:"id"`
	CompanyID  int64  `json:"company_id"`
	EmployeeID int64  `json:"employee_id"`
	Type       string `json:"type"`
	Number     string `json:"number,omitempty"`
	Title      string `json:"title,omitempty"`

	IssueDate  *time.Time `json:"issue_date,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`

	ExpiryStatus  expiry.Status `json:"expiry_status,omitempty"`
	DaysRemaining *int          `json:"days_remaining,omitempty"`

	FileURL  *string `json:"file_url,omitempty"`
	FileName *string `json:"file_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Classify fills the expiry status against the given reference date and
// window. Documents without an expiry date stay unclassified.
func (d *Document) Classify(today time.Time, windowDays int) {
	if d.ExpiryDate == nil {
		return
	}
	d.ExpiryStatus = expiry.Classify(*d.ExpiryDate, today, windowDays)
	days := expiry.DaysRemaining(*d.ExpiryDate, today)
	d.DaysRemaining = &days
}

func ValidType(t string) bool {
	switch t {
	case documentDatamodel.TypeIqama, documentDatamodel.TypePassport,
		documentDatamodel.TypeDrivingLicense, documentDatamodel.TypeWorkPermit,
		documentDatamodel.TypeHealthCard, documentDatamodel.TypeContract:
		return true
	}
	return false
}

func FromDataModel(d *documentDatamodel.Document) *Document {
	return &Document{
		ID:         d.ID,
		CompanyID:  d.CompanyID,
		EmployeeID: d.EmployeeID,
		Type:       d.Type,
		Number:     d.Number,
		Title:      d.Title,
		IssueDate:  d.IssueDate,
		ExpiryDate: d.ExpiryDate,
		FileURL:    d.FileURL,
		FileName:   d.FileName,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
