package quota

import (
	"context"
	"encoding/json"
	"time"

	"go-school/internal/domain"
	quotaerrors "go-school/internal/quota/errors"
	"go-school/internal/shared/dbtx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	QuotaKeyPrefix = "leave:quota:"
	quotaCacheTTL  = time.Hour
)

func GetQuotaKey(role domain.Role) string {
	return QuotaKeyPrefix + string(role)
}

type Service interface {
	GetDefaultQuota(ctx context.Context, role domain.Role) (domain.Allowance, error)
	ListQuotas(ctx context.Context) ([]QuotaResponse, error)
	UpdateQuota(ctx context.Context, actorID string, role domain.Role, req UpdateQuotaRequest) (QuotaResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("quota.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

// GetDefaultQuota never fails for an applicant role: storage problems fall
// back to the built-in quota.
func (s *service) GetDefaultQuota(ctx context.Context, role domain.Role) (domain.Allowance, error) {
	if !role.IsApplicant() {
		return domain.Allowance{}, quotaerrors.ErrInvalidRole
	}
	cacheKey := GetQuotaKey(role)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var a domain.Allowance
			if json.Unmarshal([]byte(cached), &a) == nil {
				return a, nil
			}
		}
	}

	v, _, _ := s.sf.Do(cacheKey, func() (any, error) {
		a, cacheable := s.loadQuota(ctx, role)
		if cacheable && s.rdb != nil {
			if data, err := json.Marshal(a); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, string(data), quotaCacheTTL).Err(); err != nil {
					s.logger.Warn("cache quota failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return a, nil
	})

	return v.(domain.Allowance), nil
}

func (s *service) loadQuota(ctx context.Context, role domain.Role) (domain.Allowance, bool) {
	fallback := FallbackQuota(role)

	q, err := s.repo.FindByRole(ctx, string(role))
	if err != nil {
		if dbtx.IsNotFound(err) {
			s.logger.Debug("quota not configured, using fallback", zap.String("role", string(role)))
			return fallback, true
		}
		s.logger.Error("load quota failed, using fallback",
			zap.String("role", string(role)),
			zap.Error(err),
		)
		return fallback, false
	}

	a, repaired := domain.RepairAllowance(q.fields(), fallback)
	if repaired {
		s.logger.Warn("quota row had invalid fields, repairing",
			zap.String("role", string(role)),
		)
		fixed := newLeaveQuota(role, a)
		fixed.UpdatedBy = q.UpdatedBy
		fixed.UpdatedAt = time.Now().UTC()
		if err := s.repo.Upsert(ctx, fixed); err != nil {
			s.logger.Error("repair quota failed", zap.String("role", string(role)), zap.Error(err))
		}
	}
	return a, true
}

func (s *service) ListQuotas(ctx context.Context) ([]QuotaResponse, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list quotas failed", zap.Error(err))
		return nil, err
	}

	byRole := make(map[string]LeaveQuota, len(rows))
	for _, q := range rows {
		byRole[q.Role] = q
	}

	resp := make([]QuotaResponse, 0, 2)
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleTeacher} {
		q, ok := byRole[string(role)]
		if !ok {
			resp = append(resp, QuotaResponse{Role: string(role), Quota: FallbackQuota(role)})
			continue
		}
		a, _ := domain.RepairAllowance(q.fields(), FallbackQuota(role))
		resp = append(resp, mapToResponse(q, a))
	}
	return resp, nil
}

// UpdateQuota overwrites the defaults of a role. Existing balances are not touched.
func (s *service) UpdateQuota(ctx context.Context, actorID string, role domain.Role, req UpdateQuotaRequest) (QuotaResponse, error) {
	s.logger.Debug("update quota requested",
		zap.String("role", string(role)),
		zap.String("actor_id", actorID),
	)
	if !role.IsApplicant() {
		return QuotaResponse{}, quotaerrors.ErrInvalidRole
	}

	a := req.Allowance()
	if a.HasNegative() {
		return QuotaResponse{}, quotaerrors.ErrNegativeQuota
	}

	q := newLeaveQuota(role, a)
	q.UpdatedBy = &actorID
	q.UpdatedAt = time.Now().UTC()

	if err := s.repo.Upsert(ctx, q); err != nil {
		s.logger.Error("update quota persist failed", zap.String("role", string(role)), zap.Error(err))
		return QuotaResponse{}, err
	}

	if s.rdb != nil {
		cacheKey := GetQuotaKey(role)
		if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate quota cache",
				zap.Error(err),
				zap.String("key", cacheKey),
			)
		}
	}

	s.logger.Info("update quota success",
		zap.String("role", string(role)),
		zap.String("actor_id", actorID),
	)
	return mapToResponse(*q, a), nil
}

func mapToResponse(q LeaveQuota, a domain.Allowance) QuotaResponse {
	resp := QuotaResponse{
		Role:       q.Role,
		Quota:      a,
		Configured: true,
		UpdatedBy:  q.UpdatedBy,
	}
	if !q.UpdatedAt.IsZero() {
		v := q.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &v
	}
	return resp
}
