package balance

import (
	"context"
	"database/sql"

	"go-school/internal/shared/dbtx"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByApplicant(ctx context.Context, applicantID string) (*LeaveBalance, error)
	FindByApplicantForUpdate(ctx context.Context, applicantID string) (*LeaveBalance, error)
	InsertIfAbsent(ctx context.Context, b *LeaveBalance, rec *ResetRecord) (bool, error)
	Save(ctx context.Context, b *LeaveBalance) error
	FindResetRecord(ctx context.Context, applicantID string) (*ResetRecord, error)
	SaveResetRecord(ctx context.Context, rec *ResetRecord) error
	InsertResetRecordIfAbsent(ctx context.Context, rec *ResetRecord) error
	ListAfter(ctx context.Context, afterApplicantID string, limit int) ([]LeaveBalance, error)
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

func (r *repository) FindByApplicant(ctx context.Context, applicantID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).First(&b, "applicant_id = ?", applicantID).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByApplicantForUpdate(ctx context.Context, applicantID string) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "applicant_id = ?", applicantID).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// InsertIfAbsent reports whether the row was created. The reset record is
// written with the new row, so a fresh balance counts as reset for its year.
// A concurrent first read may win the insert, in which case nothing is written.
func (r *repository) InsertIfAbsent(ctx context.Context, b *LeaveBalance, rec *ResetRecord) (bool, error) {
	if r.tx != nil {
		return insertBalance(r.conn(ctx), b, rec)
	}

	var inserted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		inserted, err = insertBalance(tx, b, rec)
		return err
	})
	return inserted, err
}

func insertBalance(db *gorm.DB, b *LeaveBalance, rec *ResetRecord) (bool, error) {
	res := db.
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "applicant_id"}}, DoNothing: true}).
		Create(b)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	if rec != nil {
		if err := upsertResetRecord(db, rec); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Save overwrites all four leave types.
func (r *repository) Save(ctx context.Context, b *LeaveBalance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "applicant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "casual", "medical", "emergency", "personal", "updated_at"}),
		}).
		Create(b).Error
}

func (r *repository) FindResetRecord(ctx context.Context, applicantID string) (*ResetRecord, error) {
	var rec ResetRecord
	err := r.conn(ctx).First(&rec, "applicant_id = ?", applicantID).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveResetRecord never moves the stored year backwards.
func (r *repository) SaveResetRecord(ctx context.Context, rec *ResetRecord) error {
	return upsertResetRecord(r.conn(ctx), rec)
}

func upsertResetRecord(db *gorm.DB, rec *ResetRecord) error {
	return db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "applicant_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"year":     gorm.Expr("GREATEST(leave_reset_records.year, EXCLUDED.year)"),
				"reset_at": gorm.Expr("EXCLUDED.reset_at"),
			}),
		}).
		Create(rec).Error
}

// InsertResetRecordIfAbsent keeps an existing record untouched.
func (r *repository) InsertResetRecordIfAbsent(ctx context.Context, rec *ResetRecord) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "applicant_id"}}, DoNothing: true}).
		Create(rec).Error
}

// ListAfter pages through balances in applicant id order.
func (r *repository) ListAfter(ctx context.Context, afterApplicantID string, limit int) ([]LeaveBalance, error) {
	var rows []LeaveBalance
	err := r.conn(ctx).
		Where("applicant_id > ?", afterApplicantID).
		Order("applicant_id").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
