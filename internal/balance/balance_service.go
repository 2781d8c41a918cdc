package balance

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	balanceerrors "go-school/internal/balance/errors"
	"go-school/internal/domain"
	"go-school/internal/shared/dbtx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	BalanceKeyPrefix     = "leave:balance:"
	ResetMarkerKeyPrefix = "leave:reset:checked:"

	defaultCacheTTL  = 10 * time.Minute
	defaultMarkerTTL = 24 * time.Hour
	resetPageSize    = 200
)

func GetBalanceKey(applicantID string) string {
	return BalanceKeyPrefix + applicantID
}

func GetResetMarkerKey(applicantID string, year int) string {
	return fmt.Sprintf("%s%s:%d", ResetMarkerKeyPrefix, applicantID, year)
}

// QuotaProvider supplies the default allowance of a role.
type QuotaProvider interface {
	GetDefaultQuota(ctx context.Context, role domain.Role) (domain.Allowance, error)
}

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	GetBalance(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error)
	GetCachedBalance(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error)
	SetBalance(ctx context.Context, applicantID string, role domain.Role, a domain.Allowance) error
	CheckAndReset(ctx context.Context, applicantID string, role domain.Role, current domain.Allowance) (domain.Allowance, error)
	EnsureCurrent(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role) (domain.Allowance, error)
	Overwrite(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role, a domain.Allowance) error
	Invalidate(ctx context.Context, applicantID string)
	ResetAll(ctx context.Context) (int, error)
}

type Option func(*service)

// WithClock replaces time.Now, mostly for year rollover tests.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func WithCacheTTL(balanceTTL, markerTTL time.Duration) Option {
	return func(s *service) {
		if balanceTTL > 0 {
			s.cacheTTL = balanceTTL
		}
		if markerTTL > 0 {
			s.markerTTL = markerTTL
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("balance.service")
		}
	}
}

type service struct {
	db        *sql.DB
	repo      Repository
	quotas    QuotaProvider
	rdb       *redis.Client
	logger    *zap.Logger
	now       func() time.Time
	cacheTTL  time.Duration
	markerTTL time.Duration
}

func NewService(db *sql.DB, repo Repository, quotas QuotaProvider, rdb *redis.Client, opts ...Option) Service {
	s := &service{
		db:        db,
		repo:      repo,
		quotas:    quotas,
		rdb:       rdb,
		logger:    zap.L().Named("balance.service"),
		now:       time.Now,
		cacheTTL:  defaultCacheTTL,
		markerTTL: defaultMarkerTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetBalance initializes a missing balance from the role quota and repairs
// corrupted columns in place.
func (s *service) GetBalance(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error) {
	if applicantID == "" {
		return domain.Allowance{}, balanceerrors.ErrInvalidApplicant
	}
	if !role.IsApplicant() {
		return domain.Allowance{}, domain.ErrInvalidRole
	}
	return s.loadOrInit(ctx, s.repo, applicantID, role, false)
}

// loadOrInit reads the balance through repo, locking it when forUpdate is set.
func (s *service) loadOrInit(ctx context.Context, repo Repository, applicantID string, role domain.Role, forUpdate bool) (domain.Allowance, error) {
	find := repo.FindByApplicant
	if forUpdate {
		find = repo.FindByApplicantForUpdate
	}

	row, err := find(ctx, applicantID)
	if err != nil && !dbtx.IsNotFound(err) {
		s.logger.Error("load balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return domain.Allowance{}, dbtx.MapError(err)
	}

	if row == nil {
		quota, err := s.quotas.GetDefaultQuota(ctx, role)
		if err != nil {
			return domain.Allowance{}, err
		}

		now := s.now().UTC()
		rec := &ResetRecord{ApplicantID: applicantID, Year: now.Year(), ResetAt: now}
		inserted, err := repo.InsertIfAbsent(ctx, newLeaveBalance(applicantID, role, quota, now), rec)
		if err != nil {
			s.logger.Error("initialize balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
			return domain.Allowance{}, dbtx.MapError(err)
		}
		if inserted && !forUpdate {
			s.logger.Info("balance initialized from quota",
				zap.String("applicant_id", applicantID),
				zap.String("role", string(role)),
			)
			return quota, nil
		}

		// Lost the insert race, or the new row still has to be locked.
		row, err = find(ctx, applicantID)
		if err != nil {
			s.logger.Error("reload balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
			return domain.Allowance{}, dbtx.MapError(err)
		}
	}

	return s.repairRow(ctx, repo, row, role)
}

func (s *service) repairRow(ctx context.Context, repo Repository, row *LeaveBalance, role domain.Role) (domain.Allowance, error) {
	a, repaired := domain.RepairAllowance(row.fields(), domain.Allowance{})
	if !repaired {
		return a, nil
	}

	quota, err := s.quotas.GetDefaultQuota(ctx, role)
	if err != nil {
		return domain.Allowance{}, err
	}
	a, _ = domain.RepairAllowance(row.fields(), quota)

	s.logger.Warn("balance row had invalid fields, repairing",
		zap.String("applicant_id", row.ApplicantID),
		zap.String("role", string(role)),
	)
	if err := repo.Save(ctx, newLeaveBalance(row.ApplicantID, role, a, s.now().UTC())); err != nil {
		s.logger.Error("repair balance failed", zap.String("applicant_id", row.ApplicantID), zap.Error(err))
		return domain.Allowance{}, dbtx.MapError(err)
	}
	return a, nil
}

// GetCachedBalance serves dashboard reads. Anything that spends leave must
// use LockForUpdate instead.
func (s *service) GetCachedBalance(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error) {
	cacheKey := GetBalanceKey(applicantID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var a domain.Allowance
			if json.Unmarshal([]byte(cached), &a) == nil {
				return a, nil
			}
		}
	}

	a, err := s.GetBalance(ctx, applicantID, role)
	if err != nil {
		return domain.Allowance{}, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(a); err == nil {
			if err := s.rdb.Set(ctx, cacheKey, string(data), s.cacheTTL).Err(); err != nil {
				s.logger.Warn("cache balance failed", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}
	return a, nil
}

func (s *service) SetBalance(ctx context.Context, applicantID string, role domain.Role, a domain.Allowance) error {
	s.logger.Debug("set balance requested", zap.String("applicant_id", applicantID))
	if applicantID == "" {
		return balanceerrors.ErrInvalidApplicant
	}
	if !role.IsApplicant() {
		return domain.ErrInvalidRole
	}

	now := s.now().UTC()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set balance begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Save(ctx, newLeaveBalance(applicantID, role, a, now)); err != nil {
		s.logger.Error("set balance persist failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return dbtx.MapError(err)
	}
	// A balance set before any reset belongs to the current year.
	if err := qtx.InsertResetRecordIfAbsent(ctx, &ResetRecord{ApplicantID: applicantID, Year: now.Year(), ResetAt: now}); err != nil {
		s.logger.Error("set balance reset record failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return dbtx.MapError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set balance commit failed", zap.Error(err))
		return dbtx.MapError(err)
	}
	s.Invalidate(ctx, applicantID)

	s.logger.Info("set balance success", zap.String("applicant_id", applicantID))
	return nil
}

func (s *service) CheckAndReset(ctx context.Context, applicantID string, role domain.Role, current domain.Allowance) (domain.Allowance, error) {
	a, _, err := s.checkAndReset(ctx, applicantID, role, current)
	return a, err
}

// checkAndReset overwrites the balance with the role quota when the
// applicant has not been reset for the current calendar year. The balance
// and the reset record are written in one transaction.
func (s *service) checkAndReset(ctx context.Context, applicantID string, role domain.Role, current domain.Allowance) (domain.Allowance, bool, error) {
	now := s.now().UTC()
	year := now.Year()

	rec, err := s.repo.FindResetRecord(ctx, applicantID)
	if err != nil && !dbtx.IsNotFound(err) {
		s.logger.Error("load reset record failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return domain.Allowance{}, false, dbtx.MapError(err)
	}
	if rec != nil && rec.Year >= year {
		return current, false, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reset balance begin tx failed", zap.Error(err))
		return domain.Allowance{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	locked, err := s.loadOrInit(ctx, qtx, applicantID, role, true)
	if err != nil {
		return domain.Allowance{}, false, err
	}

	// Another session may have reset while we waited for the lock.
	rec, err = qtx.FindResetRecord(ctx, applicantID)
	if err != nil && !dbtx.IsNotFound(err) {
		return domain.Allowance{}, false, dbtx.MapError(err)
	}
	if rec != nil && rec.Year >= year {
		return locked, false, nil
	}

	quota, err := s.quotas.GetDefaultQuota(ctx, role)
	if err != nil {
		return domain.Allowance{}, false, err
	}

	if err := qtx.Save(ctx, newLeaveBalance(applicantID, role, quota, now)); err != nil {
		s.logger.Error("reset balance persist failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return domain.Allowance{}, false, dbtx.MapError(err)
	}
	if err := qtx.SaveResetRecord(ctx, &ResetRecord{ApplicantID: applicantID, Year: year, ResetAt: now}); err != nil {
		s.logger.Error("reset record persist failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return domain.Allowance{}, false, dbtx.MapError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reset balance commit failed", zap.Error(err))
		return domain.Allowance{}, false, dbtx.MapError(err)
	}
	s.Invalidate(ctx, applicantID)

	s.logger.Info("balance reset for new year",
		zap.String("applicant_id", applicantID),
		zap.Int("year", year),
	)
	return quota, true, nil
}

// EnsureCurrent is the session entry check: read (or initialize) the
// balance and roll it over once per year.
func (s *service) EnsureCurrent(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error) {
	a, err := s.GetBalance(ctx, applicantID, role)
	if err != nil {
		return domain.Allowance{}, err
	}

	markerKey := GetResetMarkerKey(applicantID, s.now().UTC().Year())
	if s.rdb != nil {
		if n, err := s.rdb.Exists(ctx, markerKey).Result(); err == nil && n > 0 {
			return a, nil
		}
	}

	a, err = s.CheckAndReset(ctx, applicantID, role, a)
	if err != nil {
		return domain.Allowance{}, err
	}

	if s.rdb != nil {
		if err := s.rdb.Set(ctx, markerKey, "1", s.markerTTL).Err(); err != nil {
			s.logger.Warn("set reset marker failed", zap.String("key", markerKey), zap.Error(err))
		}
	}
	return a, nil
}

// LockForUpdate returns the balance locked by tx, creating it first if needed.
func (s *service) LockForUpdate(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role) (domain.Allowance, error) {
	return s.loadOrInit(ctx, s.repo.WithTx(tx), applicantID, role, true)
}

// Overwrite writes the balance inside tx. The caller invalidates the cache
// once tx has committed.
func (s *service) Overwrite(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role, a domain.Allowance) error {
	if err := s.repo.WithTx(tx).Save(ctx, newLeaveBalance(applicantID, role, a, s.now().UTC())); err != nil {
		s.logger.Error("overwrite balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return dbtx.MapError(err)
	}
	return nil
}

func (s *service) Invalidate(ctx context.Context, applicantID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetBalanceKey(applicantID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate balance cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

// ResetAll runs the yearly check for every stored balance and returns how
// many were reset. Failures are logged per applicant and do not stop the sweep.
func (s *service) ResetAll(ctx context.Context) (int, error) {
	reset := 0
	after := ""
	for {
		rows, err := s.repo.ListAfter(ctx, after, resetPageSize)
		if err != nil {
			s.logger.Error("reset sweep list failed", zap.String("after", after), zap.Error(err))
			return reset, err
		}
		if len(rows) == 0 {
			break
		}

		for _, row := range rows {
			if err := ctx.Err(); err != nil {
				return reset, err
			}
			role := domain.Role(row.Role)
			if !role.IsApplicant() {
				s.logger.Warn("reset sweep skipped balance with unknown role",
					zap.String("applicant_id", row.ApplicantID),
					zap.String("role", row.Role),
				)
				continue
			}
			current, _ := domain.RepairAllowance(row.fields(), domain.Allowance{})
			_, done, err := s.checkAndReset(ctx, row.ApplicantID, role, current)
			if err != nil {
				s.logger.Error("reset sweep applicant failed", zap.String("applicant_id", row.ApplicantID), zap.Error(err))
				continue
			}
			if done {
				reset++
			}
		}

		after = rows[len(rows)-1].ApplicantID
		if len(rows) < resetPageSize {
			break
		}
	}

	s.logger.Info("reset sweep finished", zap.Int("reset", reset))
	return reset, nil
}
