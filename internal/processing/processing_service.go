package processing

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"go-school/internal/domain"
	"go-school/internal/leave"
	leaveerrors "go-school/internal/leave/errors"
	"go-school/internal/shared/contextutil"
	"go-school/internal/shared/dbtx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ledger is the part of the balance store the engine writes through.
type Ledger interface {
	GetCachedBalance(ctx context.Context, applicantID string, role domain.Role) (domain.Allowance, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role) (domain.Allowance, error)
	Overwrite(ctx context.Context, tx *sql.Tx, applicantID string, role domain.Role, a domain.Allowance) error
	Invalidate(ctx context.Context, applicantID string)
}

//go:generate mockgen -source=processing_service.go -destination=mock/processing_service_mock.go -package=mock
type Engine interface {
	ProcessOne(ctx context.Context, leaveID string) (Result, error)
	ProcessBatch(ctx context.Context, applicantID string, leaveIDs []string) (BatchResult, error)
	ProcessApplicant(ctx context.Context, applicantID string) (BatchResult, error)
	ProcessPending(ctx context.Context, limit int) (int, error)
}

type engine struct {
	db     *sql.DB
	leaves leave.Repository
	ledger Ledger
	now    func() time.Time
	logger *zap.Logger

	mu     sync.Mutex
	cursor leave.SettlementCursor
}

func NewEngine(db *sql.DB, leaves leave.Repository, ledger Ledger, logger ...*zap.Logger) Engine {
	l := zap.L().Named("processing.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("processing.engine")
	}
	return &engine{
		db:     db,
		leaves: leaves,
		ledger: ledger,
		now:    time.Now,
		logger: l,
	}
}

func (e *engine) ProcessOne(ctx context.Context, leaveID string) (Result, error) {
	if _, err := uuid.Parse(leaveID); err != nil {
		return Result{}, leaveerrors.ErrInvalidLeaveID
	}
	batch, err := e.process(ctx, "", []string{leaveID})
	if err != nil {
		return Result{}, err
	}
	return batch.Results[0], nil
}

func (e *engine) ProcessBatch(ctx context.Context, applicantID string, leaveIDs []string) (BatchResult, error) {
	if applicantID == "" {
		return BatchResult{}, leaveerrors.ErrInvalidApplicant
	}
	return e.process(ctx, applicantID, leaveIDs)
}

func (e *engine) ProcessApplicant(ctx context.Context, applicantID string) (BatchResult, error) {
	if applicantID == "" {
		return BatchResult{}, leaveerrors.ErrInvalidApplicant
	}
	rows, err := e.leaves.ListApprovedUnprocessedByApplicant(ctx, applicantID)
	if err != nil {
		e.logger.Error("list approved leave failed", zap.String("applicant_id", applicantID), zap.Error(err))
		return BatchResult{}, dbtx.MapError(err)
	}
	if len(rows) == 0 {
		return BatchResult{ApplicantID: applicantID}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID.String())
	}
	return e.process(ctx, applicantID, ids)
}

// ProcessPending settles the next page of up to limit approved applications,
// one batch per applicant. Each call resumes after the last application of
// the previous page and wraps to the oldest once a short page is read, so
// applications that keep being skipped cannot hold back newer ones. A
// failing applicant is logged and left for the next pass.
func (e *engine) ProcessPending(ctx context.Context, limit int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := e.leaves.ListApprovedUnprocessed(ctx, e.cursor, limit)
	if err != nil {
		return 0, dbtx.MapError(err)
	}
	if len(rows) < limit {
		e.cursor = leave.SettlementCursor{}
	} else {
		last := rows[len(rows)-1]
		e.cursor = leave.SettlementCursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}

	var order []string
	grouped := make(map[string][]string)
	for _, row := range rows {
		if _, ok := grouped[row.ApplicantID]; !ok {
			order = append(order, row.ApplicantID)
		}
		grouped[row.ApplicantID] = append(grouped[row.ApplicantID], row.ID.String())
	}

	processed := 0
	for _, applicantID := range order {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		batch, err := e.process(ctx, applicantID, grouped[applicantID])
		if err != nil {
			e.logger.Warn("process applicant batch failed",
				zap.String("applicant_id", applicantID),
				zap.Error(err),
			)
			continue
		}
		processed += batch.Processed()
	}
	return processed, nil
}

// process locks the applications in id order, then the applicant balance,
// and settles every approved application that keeps the balance at or above
// zero. An empty applicantID takes the applicant of the first application.
func (e *engine) process(ctx context.Context, applicantID string, leaveIDs []string) (BatchResult, error) {
	log := contextutil.GetLogger(ctx, e.logger)
	ids := uniqueSorted(leaveIDs)

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("process leave begin tx failed", zap.Error(err))
		return BatchResult{}, dbtx.MapError(err)
	}
	defer tx.Rollback()

	qtx := e.leaves.WithTx(tx)

	outcomes := make(map[string]Outcome, len(ids))
	candidates := make([]*leave.LeaveApplication, 0, len(ids))
	for _, id := range ids {
		app, err := qtx.FindByIDForUpdate(ctx, id)
		if err != nil {
			if dbtx.IsNotFound(err) {
				log.Info("process leave skipped missing application", zap.String("leave_id", id))
				outcomes[id] = OutcomeNotFound
				continue
			}
			log.Error("process leave load failed", zap.String("leave_id", id), zap.Error(err))
			e.resync(ctx, applicantID, "")
			return BatchResult{}, dbtx.MapError(err)
		}
		if applicantID == "" {
			applicantID = app.ApplicantID
		}
		switch {
		case app.ApplicantID != applicantID:
			outcomes[id] = OutcomeNotFound
		case app.Processed:
			outcomes[id] = OutcomeAlreadyProcessed
		case app.Status != leave.StatusApproved:
			outcomes[id] = OutcomeNotApproved
		default:
			candidates = append(candidates, app)
		}
	}

	result := BatchResult{ApplicantID: applicantID}
	if len(candidates) == 0 {
		result.Results = collect(ids, outcomes, nil)
		return result, nil
	}

	role := domain.Role(candidates[0].ApplicantType)
	running, err := e.ledger.LockForUpdate(ctx, tx, applicantID, role)
	if err != nil {
		log.Error("process leave lock balance failed", zap.String("applicant_id", applicantID), zap.Error(err))
		e.resync(ctx, applicantID, role)
		return BatchResult{}, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	now := e.now().UTC()
	after := make(map[string]domain.Allowance, len(candidates))
	for _, app := range candidates {
		id := app.ID.String()
		leaveType := domain.LeaveType(app.LeaveType)
		next := running.Deduct(leaveType, app.Duration)
		if next.Get(leaveType) < 0 {
			log.Warn("process leave skipped insufficient balance",
				zap.String("leave_id", id),
				zap.String("leave_type", app.LeaveType),
				zap.Int("remaining", running.Get(leaveType)),
				zap.Int("requested", app.Duration),
			)
			outcomes[id] = OutcomeSkipped
			continue
		}

		app.Settle(next, now)
		if err := qtx.Update(ctx, app); err != nil {
			log.Error("process leave persist failed", zap.String("leave_id", id), zap.Error(err))
			e.resync(ctx, applicantID, role)
			return BatchResult{}, dbtx.MapError(err)
		}
		running = next
		outcomes[id] = OutcomeProcessed
		after[id] = next
	}

	if len(after) > 0 {
		if err := e.ledger.Overwrite(ctx, tx, applicantID, role, running); err != nil {
			e.resync(ctx, applicantID, role)
			return BatchResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("process leave commit failed", zap.String("applicant_id", applicantID), zap.Error(err))
		e.resync(ctx, applicantID, role)
		return BatchResult{}, dbtx.MapError(err)
	}
	if len(after) > 0 {
		e.ledger.Invalidate(ctx, applicantID)
	}

	result.Results = collect(ids, outcomes, after)
	result.Balance = &running

	log.Info("process leave batch committed",
		zap.String("applicant_id", applicantID),
		zap.Int("processed", len(after)),
		zap.Int("candidates", len(candidates)),
	)
	return result, nil
}

// resync drops the cached balance after a failed batch and reloads it from
// the store when the role is known.
func (e *engine) resync(ctx context.Context, applicantID string, role domain.Role) {
	if applicantID == "" {
		return
	}
	e.ledger.Invalidate(ctx, applicantID)
	if role == "" {
		return
	}
	if _, err := e.ledger.GetCachedBalance(ctx, applicantID, role); err != nil {
		e.logger.Warn("reload balance after failed batch failed",
			zap.String("applicant_id", applicantID),
			zap.Error(err),
		)
	}
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func collect(ids []string, outcomes map[string]Outcome, after map[string]domain.Allowance) []Result {
	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		r := Result{LeaveID: id, Outcome: outcomes[id]}
		if a, ok := after[id]; ok {
			r.BalanceAfter = &a
		}
		results = append(results, r)
	}
	return results
}
