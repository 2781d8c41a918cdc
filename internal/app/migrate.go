package app

import (
	"context"
	"database/sql"

	"go-school/internal/balance"
	"go-school/internal/leave"
	"go-school/internal/messaging/kafka"
	"go-school/internal/quota"

	"gorm.io/gorm"
)

// Migrate creates or updates the ledger tables and the outbox table.
func Migrate(ctx context.Context, gormDB *gorm.DB, sqlDB *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(
		&quota.LeaveQuota{},
		&balance.LeaveBalance{},
		&balance.ResetRecord{},
		&leave.LeaveApplication{},
	); err != nil {
		return err
	}
	_, err := sqlDB.ExecContext(ctx, kafka.OutboxSchema)
	return err
}
