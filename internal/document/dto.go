package document

import (
	"strings"
	"time"
)

type CreateDocumentDTO struct {
	EmployeeID int64      `json:"employee_id"`
	Type       string     `json:"type"`
	Number     string     `json:"number"`
	Title      string     `json:"title"`
	IssueDate  *time.Time `json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date"`
	FileURL    *string    `json:"file_url"`
	FileName   *string    `json:"file_name"`
}

func (d *CreateDocumentDTO) Validate() error {
	d.Type = strings.TrimSpace(d.Type)
	if d.EmployeeID <= 0 {
		return &ValidationError{Field: "employee_id", Message: "employee id is required"}
	}
	if !ValidType(d.Type) {
		return &ValidationError{Field: "type", Message: "invalid document type"}
	}
	if d.IssueDate != nil && d.ExpiryDate != nil && d.ExpiryDate.Before(*d.IssueDate) {
		return &ValidationError{Field: "expiry_date", Message: "expiry date cannot precede issue date"}
	}
	return nil
}

type UpdateDocumentDTO struct {
	Number     *string    `json:"number"`
	Title      *string    `json:"title"`
	IssueDate  *time.Time `json:"issue_date"`
	ExpiryDate *time.Time `json:"expiry_date"`
	FileURL    *string    `json:"file_url"`
	FileName   *string    `json:"file_name"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type ListParams struct {
	EmployeeID *int64
	Type       string
	Limit      int
	Offset     int
}

type DocumentListResponse struct {
	Documents []*Document `json:"documents"`
	Total     int64       `json:"total"`
}

// ExpirySummary buckets a company's dated documents for the dashboard.
type ExpirySummary struct {
	WindowDays int   `json:"window_days"`
	Expired    int   `json:"expired"`
	Expiring   int   `json:"expiring"`
	Valid      int   `json:"valid"`
	Total      int   `json:"total"`
}
