package entitlement

import (
	"context"
	"log/slog"

	companyDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/company"
)

// Counter reports live per-company resource counts. Implementations must
// read through the transaction carried in ctx so that a quota check inside a
// create transaction sees its own writes.
type Counter interface {
	CountUsers(ctx context.Context, companyID int64) (int64, error)
	CountEmployees(ctx context.Context, companyID int64) (int64, error)
	CountVehicles(ctx context.Context, companyID int64) (int64, error)
	CountDepartments(ctx context.Context, companyID int64) (int64, error)
}

// Service answers quota questions against live counts. There is no caching:
// counts are taken at read time, and the surrounding transaction plus the
// database uniqueness constraints are the only guards against racing writers.
type Service struct {
	counter Counter
	logger  *slog.Logger
}

func NewService(counter Counter, logger *slog.Logger) *Service {
	return &Service{counter: counter, logger: logger}
}

func (s *Service) canAdd(ctx context.Context, companyID int64, limit int, count func(context.Context, int64) (int64, error)) (bool, error) {
	if limit <= 0 {
		// zero disables the resource regardless of subscription state
		return false, nil
	}
	current, err := count(ctx, companyID)
	if err != nil {
		s.logger.Error("failed to count company resources", "error", err, "company_id", companyID)
		return false, err
	}
	return current < int64(limit), nil
}

func (s *Service) CanAddUser(ctx context.Context, c *companyDatamodel.Company) (bool, error) {
	return s.canAdd(ctx, c.ID, EffectiveLimits(c).MaxUsers, s.counter.CountUsers)
}

func (s *Service) CanAddEmployee(ctx context.Context, c *companyDatamodel.Company) (bool, error) {
	return s.canAdd(ctx, c.ID, EffectiveLimits(c).MaxEmployees, s.counter.CountEmployees)
}

func (s *Service) CanAddVehicle(ctx context.Context, c *companyDatamodel.Company) (bool, error) {
	return s.canAdd(ctx, c.ID, EffectiveLimits(c).MaxVehicles, s.counter.CountVehicles)
}

func (s *Service) CanAddDepartment(ctx context.Context, c *companyDatamodel.Company) (bool, error) {
	return s.canAdd(ctx, c.ID, EffectiveLimits(c).MaxDepartments, s.counter.CountDepartments)
}

// Usage is the dashboard view of counts against ceilings.
type Usage struct {
	Users       ResourceUsage `json:"users"`
	Employees   ResourceUsage `json:"employees"`
	Vehicles    ResourceUsage `json:"vehicles"`
	Departments ResourceUsage `json:"departments"`
}

type ResourceUsage struct {
	Current int64 `json:"current"`
	Limit   int   `json:"limit"`
}

func (s *Service) UsageFor(ctx context.Context, c *companyDatamodel.Company) (*Usage, error) {
	limits := EffectiveLimits(c)

	users, err := s.counter.CountUsers(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	employees, err := s.counter.CountEmployees(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.counter.CountVehicles(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	departments, err := s.counter.CountDepartments(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	return &Usage{
		Users:       ResourceUsage{Current: users, Limit: limits.MaxUsers},
		Employees:   ResourceUsage{Current: employees, Limit: limits.MaxEmployees},
		Vehicles:    ResourceUsage{Current: vehicles, Limit: limits.MaxVehicles},
		Departments: ResourceUsage{Current: departments, Limit: limits.MaxDepartments},
	}, nil
}
