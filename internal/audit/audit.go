// Package audit appends an immutable trail of mutating actions. A record is
// written inside the same transaction as the mutation it describes, so
// either both or neither persist.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/alfarhan/hr-fleet-management/internal"
	auditDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/audit"
)

// SentinelIP marks records written without a request context (workers,
// seeders, migrations).
const SentinelIP = "system"

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionGrant  = "grant_permission"
	ActionRevoke = "revoke_permission"
)

// Entry is what callers supply; the recorder fills in timestamp and IP
// fallback.
type Entry struct {
	CompanyID    *int64
	ActorID      *int64
	Action       string
	EntityType   string
	EntityID     int64
	EntityName   string
	Details      string
	PreviousData interface{}
	NewData      interface{}
	IPAddress    string
}

type RepositoryAPI interface {
	Create(ctx context.Context, record *auditDatamodel.Record) error
	GetByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error)
	GetByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*auditDatamodel.Record, error)
}

type Recorder struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewRecorder(repo RepositoryAPI, logger *slog.Logger) *Recorder {
	return &Recorder{repo: repo, logger: logger}
}

// Record appends one audit row. The before/after snapshots are marshalled to
// JSON here so callers pass plain structs. When no actor is supplied the
// recorder falls back to the request identity carried in context. An error
// propagates to the caller and rolls back the surrounding transaction
// together with the mutation.
func (r *Recorder) Record(ctx context.Context, entry Entry) (*auditDatamodel.Record, error) {
	previous, err := marshalSnapshot(entry.PreviousData)
	if err != nil {
		return nil, err
	}
	next, err := marshalSnapshot(entry.NewData)
	if err != nil {
		return nil, err
	}

	ip := entry.IPAddress
	if ip == "" {
		ip = SentinelIP
	}

	actorID := entry.ActorID
	if actorID == nil {
		if raw := internal.UserIDFromContext(ctx); raw != "" {
			if id, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
				actorID = &id
			}
		}
	}

	record := &auditDatamodel.Record{
		CompanyID:    entry.CompanyID,
		ActorID:      actorID,
		Action:       entry.Action,
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		EntityName:   entry.EntityName,
		Details:      entry.Details,
		PreviousData: previous,
		NewData:      next,
		IPAddress:    ip,
		CreatedAt:    time.Now(),
	}

	if err := r.repo.Create(ctx, record); err != nil {
		r.logger.Error("failed to write audit record",
			"error", err,
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID)
		return nil, err
	}

	return record, nil
}

// History returns the trail for one entity, newest first.
func (r *Recorder) History(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.repo.GetByEntity(ctx, entityType, entityID, limit)
}

// CompanyTrail returns the paginated trail for a whole company.
func (r *Recorder) CompanyTrail(ctx context.Context, companyID int64, limit, offset int) ([]*auditDatamodel.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.repo.GetByCompany(ctx, companyID, limit, offset)
}

func marshalSnapshot(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
