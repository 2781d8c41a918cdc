package leave

import (
	"context"
	"database/sql"
	"time"

	"go-school/internal/shared/dbtx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveApplication) error
	FindByID(ctx context.Context, id string) (*LeaveApplication, error)
	FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error)
	Update(ctx context.Context, l *LeaveApplication) error
	ListByApplicant(ctx context.Context, applicantID string, since time.Time) ([]LeaveApplication, error)
	ListByStatus(ctx context.Context, status string, since time.Time) ([]LeaveApplication, error)
	ListApprovedUnprocessed(ctx context.Context, after SettlementCursor, limit int) ([]LeaveApplication, error)
	ListApprovedUnprocessedByApplicant(ctx context.Context, applicantID string) ([]LeaveApplication, error)
}

// SettlementCursor is the (created_at, id) position of a settlement scan.
// The zero value starts from the oldest application.
type SettlementCursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func (c SettlementCursor) IsZero() bool {
	return c.ID == uuid.Nil
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	if err := r.conn(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id string) (*LeaveApplication, error) {
	var l LeaveApplication
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Update(ctx context.Context, l *LeaveApplication) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) ListByApplicant(ctx context.Context, applicantID string, since time.Time) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.conn(ctx).
		Where("applicant_id = ?", applicantID).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListByStatus(ctx context.Context, status string, since time.Time) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.conn(ctx).
		Where("status = ?", status).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}

// ListApprovedUnprocessed returns applications waiting for settlement that
// come after the cursor, oldest first.
func (r *repository) ListApprovedUnprocessed(ctx context.Context, after SettlementCursor, limit int) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	q := r.conn(ctx).Where("status = ? AND processed = ?", StatusApproved, false)
	if !after.IsZero() {
		q = q.Where("(created_at, id) > (?, ?)", after.CreatedAt, after.ID)
	}
	err := q.
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) ListApprovedUnprocessedByApplicant(ctx context.Context, applicantID string) ([]LeaveApplication, error) {
	var leaves []LeaveApplication
	err := r.conn(ctx).
		Where("applicant_id = ?", applicantID).
		Where("status = ? AND processed = ?", StatusApproved, false).
		Order("created_at ASC").
		Find(&leaves).Error
	return leaves, err
}
