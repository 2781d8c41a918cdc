package quota

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=quota_repo.go -destination=mock/quota_repo_mock.go -package=mock
type Repository interface {
	FindByRole(ctx context.Context, role string) (*LeaveQuota, error)
	FindAll(ctx context.Context) ([]LeaveQuota, error)
	Upsert(ctx context.Context, q *LeaveQuota) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByRole(ctx context.Context, role string) (*LeaveQuota, error) {
	var q LeaveQuota
	err := r.db.WithContext(ctx).First(&q, "role = ?", role).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveQuota, error) {
	var quotas []LeaveQuota
	err := r.db.WithContext(ctx).Order("role").Find(&quotas).Error
	return quotas, err
}

// Upsert overwrites every column of the role row.
func (r *repository) Upsert(ctx context.Context, q *LeaveQuota) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "role"}},
			DoUpdates: clause.AssignmentColumns([]string{"casual", "medical", "emergency", "personal", "updated_by", "updated_at"}),
		}).
		Create(q).Error
}
