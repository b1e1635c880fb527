package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/alfarhan/hr-fleet-management/internal"
	"github.com/alfarhan/hr-fleet-management/internal/audit"
	auditDatamodel "github.com/alfarhan/hr-fleet-management/internal/core/datamodel/audit"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

// MockRepository implements audit.RepositoryAPI for testing
type MockRepository struct {
	records    []*auditDatamodel.Record
	shouldFail bool
	failError  error

	lastLimit  int
	lastOffset int
}

func (m *MockRepository) Create(ctx context.Context, record *auditDatamodel.Record) error {
	if m.shouldFail {
		return m.failError
	}
	m.records = append(m.records, record)
	return nil
}

func (m *MockRepository) GetByEntity(ctx context.Context, entityType string, entityID int64, limit int) ([]*auditDatamodel.Record, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.lastLimit = limit
	var out []*auditDatamodel.Record
	for _, r := range m.records {
		if r.EntityType == entityType && r.EntityID == entityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockRepository) GetByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*auditDatamodel.Record, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	m.lastLimit = limit
	m.lastOffset = offset
	var out []*auditDatamodel.Record
	for _, r := range m.records {
		if r.CompanyID != nil && *r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

var _ = Describe("Recorder", func() {
	var (
		repo     *MockRepository
		recorder *audit.Recorder
		ctx      context.Context
	)

	companyID := int64(1)
	actorID := int64(10)

	BeforeEach(func() {
		repo = &MockRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		recorder = audit.NewRecorder(repo, logger)
		ctx = context.Background()
	})

	Describe("Record", func() {
		It("should persist the entry with marshalled snapshots", func() {
			type snapshot struct {
				Name string `json:"name"`
			}

			record, err := recorder.Record(ctx, audit.Entry{
				CompanyID:    &companyID,
				ActorID:      &actorID,
				Action:       audit.ActionUpdate,
				EntityType:   "employee",
				EntityID:     7,
				EntityName:   "EMP-007",
				PreviousData: snapshot{Name: "old"},
				NewData:      snapshot{Name: "new"},
				IPAddress:    "10.0.0.1",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.records).To(HaveLen(1))
			Expect(record.Action).To(Equal("update"))
			Expect(string(record.PreviousData)).To(MatchJSON(`{"name":"old"}`))
			Expect(string(record.NewData)).To(MatchJSON(`{"name":"new"}`))
			Expect(record.IPAddress).To(Equal("10.0.0.1"))
			Expect(record.CreatedAt).NotTo(BeZero())
		})

		It("should leave snapshots nil when not supplied", func() {
			record, err := recorder.Record(ctx, audit.Entry{
				Action:     audit.ActionDelete,
				EntityType: "vehicle",
				EntityID:   3,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.PreviousData).To(BeNil())
			Expect(record.NewData).To(BeNil())
		})

		It("should fall back to the sentinel IP without a request context", func() {
			record, err := recorder.Record(ctx, audit.Entry{
				Action:     audit.ActionCreate,
				EntityType: "document",
				EntityID:   5,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.IPAddress).To(Equal(audit.SentinelIP))
		})

		It("should take the actor from request context when the entry has none", func() {
			record, err := recorder.Record(internal.ContextWithUserID(ctx, "42"), audit.Entry{
				Action:     audit.ActionUpdate,
				EntityType: "employee",
				EntityID:   7,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.ActorID).NotTo(BeNil())
			Expect(*record.ActorID).To(Equal(int64(42)))
		})

		It("should leave the actor empty for system flows", func() {
			record, err := recorder.Record(ctx, audit.Entry{
				Action:     audit.ActionCreate,
				EntityType: "company",
				EntityID:   9,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(record.ActorID).To(BeNil())
		})

		It("should propagate repository errors so the surrounding transaction rolls back", func() {
			repo.shouldFail = true
			repo.failError = errors.New("insert failed")

			record, err := recorder.Record(ctx, audit.Entry{
				Action:     audit.ActionCreate,
				EntityType: "employee",
				EntityID:   1,
			})
			Expect(err).To(HaveOccurred())
			Expect(record).To(BeNil())
		})
	})

	Describe("History", func() {
		It("should default the limit when non-positive", func() {
			_, err := recorder.History(ctx, "employee", 7, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.lastLimit).To(Equal(50))
		})

		It("should filter by entity", func() {
			_, _ = recorder.Record(ctx, audit.Entry{Action: audit.ActionCreate, EntityType: "employee", EntityID: 7})
			_, _ = recorder.Record(ctx, audit.Entry{Action: audit.ActionCreate, EntityType: "vehicle", EntityID: 7})

			records, err := recorder.History(ctx, "employee", 7, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].EntityType).To(Equal("employee"))
		})
	})

	Describe("CompanyTrail", func() {
		It("should filter by company and default the limit", func() {
			other := int64(2)
			_, _ = recorder.Record(ctx, audit.Entry{CompanyID: &companyID, Action: audit.ActionCreate, EntityType: "employee", EntityID: 1})
			_, _ = recorder.Record(ctx, audit.Entry{CompanyID: &other, Action: audit.ActionCreate, EntityType: "employee", EntityID: 2})

			records, err := recorder.CompanyTrail(ctx, companyID, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(repo.lastLimit).To(Equal(50))
		})
	})
})
