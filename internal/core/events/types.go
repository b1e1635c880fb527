package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeDocumentExpiring = "document.expiring"
	EventTypeDocumentExpired  = "document.expired"
	EventTypeVehicleExpiring  = "vehicle.document_expiring"
)

// DocumentExpiringEvent fires when the scanner finds an employee document
// inside its warning window or already past its date.
type DocumentExpiringEvent struct {
	BaseEvent
	DocumentID    int64  `json:"document_id"`
	CompanyID     int64  `json:"company_id"`
	EmployeeID    int64  `json:"employee_id"`
	DocumentType  string `json:"document_type"`
	DaysRemaining int    `json:"days_remaining"`
}

func NewDocumentExpiringEvent(documentID, companyID, employeeID int64, documentType string, daysRemaining int) *DocumentExpiringEvent {
	eventType := EventTypeDocumentExpiring
	if daysRemaining < 0 {
		eventType = EventTypeDocumentExpired
	}
	return &DocumentExpiringEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"document_id":    documentID,
				"company_id":     companyID,
				"employee_id":    employeeID,
				"document_type":  documentType,
				"days_remaining": daysRemaining,
			},
		},
		DocumentID:    documentID,
		CompanyID:     companyID,
		EmployeeID:    employeeID,
		DocumentType:  documentType,
		DaysRemaining: daysRemaining,
	}
}

// VehicleExpiringEvent fires for registration, insurance or inspection dates
// approaching their deadline.
type VehicleExpiringEvent struct {
	BaseEvent
	VehicleID     int64  `json:"vehicle_id"`
	CompanyID     int64  `json:"company_id"`
	PlateNumber   string `json:"plate_number"`
	DateKind      string `json:"date_kind"`
	DaysRemaining int    `json:"days_remaining"`
}

func NewVehicleExpiringEvent(vehicleID, companyID int64, plateNumber, dateKind string, daysRemaining int) *VehicleExpiringEvent {
	return &VehicleExpiringEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeVehicleExpiring,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"vehicle_id":     vehicleID,
				"company_id":     companyID,
				"plate_number":   plateNumber,
				"date_kind":      dateKind,
				"days_remaining": daysRemaining,
			},
		},
		VehicleID:     vehicleID,
		CompanyID:     companyID,
		PlateNumber:   plateNumber,
		DateKind:      dateKind,
		DaysRemaining: daysRemaining,
	}
}
