package department

import "strings"

type CreateDepartmentDTO struct {
	Name      string `json:"name"`
	NameAr    string `json:"name_ar"`
	ManagerID *int64 `json:"manager_id"`
}

func (d *CreateDepartmentDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	return nil
}

type UpdateDepartmentDTO struct {
	Name      *string `json:"name"`
	NameAr    *string `json:"name_ar"`
	ManagerID *int64  `json:"manager_id"`
}

func (d *UpdateDepartmentDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}
	return nil
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

type DepartmentListResponse struct {
	Departments []*Department `json:"departments"`
	Total       int           `json:"total"`
}
