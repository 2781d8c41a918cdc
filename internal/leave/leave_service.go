package leave

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go-school/internal/domain"
	"go-school/internal/events"
	leaveerrors "go-school/internal/leave/errors"
	"go-school/internal/messaging/kafka"
	"go-school/internal/shared/contextutil"
	"go-school/internal/shared/dbtx"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const (
	defaultApplicantLookback = 365 * 24 * time.Hour
	defaultPendingLookback   = 30 * 24 * time.Hour
)

// BalanceStore is the part of the balance ledger a submission needs.
type BalanceStore interface {
	EnsureCurrent(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role) (domain.Allowance, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, applicantID string, role domain.Role, req SubmitLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, reviewerID, id, bucket, decision string, rejectionReason *string) (LeaveResponse, error)
	Approve(ctx context.Context, reviewerID, id, bucket string) (LeaveResponse, error)
	Reject(ctx context.Context, reviewerID, id, bucket string, rejectionReason *string) (LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	ListForApplicant(ctx context.Context, applicantID string) ([]LeaveResponse, error)
	ListPending(ctx context.Context) ([]LeaveResponse, error)
}

// Lookback bounds the list queries. Zero values use the defaults.
type Lookback struct {
	Applicant time.Duration
	Pending   time.Duration
}

func LookbackDays(applicantDays, pendingDays int) Lookback {
	return Lookback{
		Applicant: time.Duration(applicantDays) * 24 * time.Hour,
		Pending:   time.Duration(pendingDays) * 24 * time.Hour,
	}
}

type service struct {
	db       *sql.DB
	repo     Repository
	balances BalanceStore
	outbox   kafka.OutboxRepository
	lookback Lookback
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances BalanceStore,
	outbox kafka.OutboxRepository,
	lookback Lookback,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if lookback.Applicant <= 0 {
		lookback.Applicant = defaultApplicantLookback
	}
	if lookback.Pending <= 0 {
		lookback.Pending = defaultPendingLookback
	}
	return &service{
		db:       db,
		repo:     repo,
		balances: balances,
		outbox:   outbox,
		lookback: lookback,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) Submit(ctx context.Context, applicantID string, role domain.Role, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("applicant_id", applicantID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if strings.TrimSpace(applicantID) == "" {
		return LeaveResponse{}, leaveerrors.ErrInvalidApplicant
	}
	if !role.IsApplicant() {
		return LeaveResponse{}, domain.ErrInvalidRole
	}
	leaveType, err := domain.ParseLeaveType(req.LeaveType)
	if err != nil {
		return LeaveResponse{}, err
	}
	startDate, err := domain.ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := domain.ParseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	duration, err := domain.InclusiveDayCount(startDate, endDate)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	// Roll over to the new year before anything is spent.
	if _, err := s.balances.EnsureCurrent(ctx, applicantID, role); err != nil {
		log.Error("submit leave balance check failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	// The lock is held until commit so concurrent submissions see each other.
	current, err := s.balances.LockForUpdate(ctx, tx, applicantID, role)
	if err != nil {
		log.Error("submit leave lock balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return LeaveResponse{}, err
	}

	remaining := current.Get(leaveType)
	if duration > remaining {
		log.Warn("submit leave insufficient balance",
			zap.String("applicant_id", applicantID),
			zap.String("leave_type", string(leaveType)),
			zap.Int("remaining", remaining),
			zap.Int("requested", duration),
		)
		return LeaveResponse{}, &leaveerrors.InsufficientBalanceError{
			LeaveType: string(leaveType),
			Remaining: remaining,
			Requested: duration,
		}
	}

	now := s.now().UTC()
	l := &LeaveApplication{
		ID:            uuid.New(),
		DateBucket:    domain.DateBucket(now),
		ApplicantID:   applicantID,
		ApplicantType: string(role),
		LeaveType:     string(leaveType),
		StartDate:     startDate,
		EndDate:       endDate,
		Duration:      duration,
		Reason:        req.Reason,
		Status:        StatusPending,
		Processed:     false,
		BalanceBefore: datatypes.NewJSONType(current),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, dbtx.MapError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, dbtx.MapError(err)
	}
	log.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("applicant_id", applicantID),
		zap.String("date_bucket", l.DateBucket),
		zap.Int("duration", duration),
	)

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id, bucket string) (LeaveResponse, error) {
	return s.Review(ctx, reviewerID, id, bucket, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, bucket string, rejectionReason *string) (LeaveResponse, error) {
	return s.Review(ctx, reviewerID, id, bucket, StatusRejected, rejectionReason)
}

// Review records a decision on a pending application. An approval also
// queues a leave_reviewed event in the same transaction.
func (s *service) Review(ctx context.Context, reviewerID, id, bucket, decision string, rejectionReason *string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("decision", decision),
	)

	if decision != StatusApproved && decision != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidDecision
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("review leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if dbtx.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		log.Error("review leave load failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, dbtx.MapError(err)
	}
	if bucket != "" && bucket != l.DateBucket {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}
	if l.Status != StatusPending {
		log.Warn("review leave invalid transition",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", decision),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	l.Status = decision
	l.ReviewedBy = &reviewerID
	l.ReviewedAt = &now
	l.UpdatedAt = now
	l.RejectionReason = nil
	if decision == StatusRejected && rejectionReason != nil && *rejectionReason != "" {
		l.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, l); err != nil {
		log.Error("review leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, dbtx.MapError(err)
	}

	if decision == StatusApproved && s.outbox != nil {
		rid := contextutil.GetRequestID(ctx)
		event, err := kafka.NewOutboxEvent(rid, "leave_application", l.ID.String(),
			events.LeaveReviewedEventType, events.LeaveReviewedTopic,
			events.LeaveReviewedEvent{
				EventType:     events.LeaveReviewedEventType,
				RequestID:     rid,
				LeaveID:       l.ID.String(),
				ApplicantID:   l.ApplicantID,
				ApplicantType: l.ApplicantType,
				Decision:      decision,
				ReviewedBy:    reviewerID,
				OccurredAt:    now,
			})
		if err != nil {
			log.Error("review leave build event failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("review leave outbox persist failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("review leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, dbtx.MapError(err)
	}
	log.Info("review leave success",
		zap.String("leave_id", id),
		zap.String("status", decision),
		zap.String("reviewer_id", reviewerID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if dbtx.IsNotFound(err) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) ListForApplicant(ctx context.Context, applicantID string) ([]LeaveResponse, error) {
	if strings.TrimSpace(applicantID) == "" {
		return nil, leaveerrors.ErrInvalidApplicant
	}
	since := s.now().UTC().Add(-s.lookback.Applicant)
	leaves, err := s.repo.ListByApplicant(ctx, applicantID, since)
	if err != nil {
		s.logger.Error("list applicant leaves failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) ListPending(ctx context.Context) ([]LeaveResponse, error) {
	since := s.now().UTC().Add(-s.lookback.Pending)
	leaves, err := s.repo.ListByStatus(ctx, StatusPending, since)
	if err != nil {
		s.logger.Error("list pending leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		DateBucket:      l.DateBucket,
		ApplicantID:     l.ApplicantID,
		ApplicantType:   l.ApplicantType,
		LeaveType:       l.LeaveType,
		StartDate:       l.StartDate.Format(domain.DateLayout),
		EndDate:         l.EndDate.Format(domain.DateLayout),
		Duration:        l.Duration,
		Reason:          l.Reason,
		Status:          l.Status,
		Processed:       l.Processed,
		BalanceBefore:   l.BalanceBefore.Data(),
		ReviewedBy:      l.ReviewedBy,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
	if l.BalanceAfter != nil {
		after := l.BalanceAfter.Data()
		resp.BalanceAfter = &after
	}
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveApplication) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
