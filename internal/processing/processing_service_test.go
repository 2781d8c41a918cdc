package processing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-school/internal/domain"
	"go-school/internal/leave"
	leaveMock "go-school/internal/leave/mock"
	"go-school/internal/processing"
	processingMock "go-school/internal/processing/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type engineDeps struct {
	sqlMock sqlmock.Sqlmock
	repo    *leaveMock.MockRepository
	ledger  *processingMock.MockLedger
	engine  processing.Engine
}

func setupEngineTest(t *testing.T) *engineDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := leaveMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	ledger := processingMock.NewMockLedger(ctrl)

	return &engineDeps{
		sqlMock: sqlMock,
		repo:    repo,
		ledger:  ledger,
		engine:  processing.NewEngine(db, repo, ledger),
	}
}

func approved(id uuid.UUID, leaveType string, days int, createdAt time.Time) *leave.LeaveApplication {
	return &leave.LeaveApplication{
		ID:            id,
		ApplicantID:   "stu-1",
		ApplicantType: string(domain.RoleStudent),
		LeaveType:     leaveType,
		Duration:      days,
		Status:        leave.StatusApproved,
		BalanceBefore: datatypes.NewJSONType(domain.Allowance{}),
		CreatedAt:     createdAt,
	}
}

// orderedIDs returns n ids in ascending string order, which is the lock order.
func orderedIDs(n int) []uuid.UUID {
	ids := make([]uuid.UUID, n)
	for i := range ids {
		ids[i] = uuid.MustParse("00000000-0000-0000-0000-00000000000" + string(rune('1'+i)))
	}
	return ids
}

func TestEngine_ProcessOne(t *testing.T) {
	start := domain.Allowance{Casual: 10, Medical: 15, Emergency: 5, Personal: 5}

	t.Run("deducts and settles", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "medical", 3, time.Now())

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *leave.LeaveApplication) error {
			assert.True(t, l.Processed)
			assert.Equal(t, 12, l.BalanceAfter.Data().Medical)
			return nil
		})
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, start.Deduct(domain.LeaveMedical, 3)).Return(nil)
		d.sqlMock.ExpectCommit()
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")

		res, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeProcessed, res.Outcome)
		assert.Equal(t, 12, res.BalanceAfter.Medical)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("already processed is a no-op", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "casual", 1, time.Now())
		app.Processed = true

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeAlreadyProcessed, res.Outcome)
		assert.Nil(t, res.BalanceAfter)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("pending is not settled", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "casual", 1, time.Now())
		app.Status = leave.StatusPending

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeNotApproved, res.Outcome)
	})

	t.Run("missing application is a no-op", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(nil, gorm.ErrRecordNotFound)
		d.sqlMock.ExpectRollback()

		res, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeNotFound, res.Outcome)
	})

	t.Run("deduction below zero is skipped", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "emergency", 6, time.Now())

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.sqlMock.ExpectCommit()

		res, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeSkipped, res.Outcome)
		assert.False(t, app.Processed)
	})

	t.Run("malformed id", func(t *testing.T) {
		d := setupEngineTest(t)

		_, err := d.engine.ProcessOne(context.Background(), "nope")

		assert.Error(t, err)
	})

	t.Run("failed write resynchronizes the cache", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "casual", 2, time.Now())

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, gomock.Any()).Return(errors.New("db down"))
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")
		d.ledger.EXPECT().GetCachedBalance(gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.sqlMock.ExpectRollback()

		_, err := d.engine.ProcessOne(context.Background(), id.String())

		assert.Error(t, err)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}

func TestEngine_ProcessBatch(t *testing.T) {
	start := domain.Allowance{Casual: 3, Medical: 15, Emergency: 5, Personal: 5}
	now := time.Now()

	t.Run("running balance skips what would go negative", func(t *testing.T) {
		d := setupEngineTest(t)
		ids := orderedIDs(3)
		first := approved(ids[0], "casual", 2, now.Add(-3*time.Hour))
		second := approved(ids[1], "casual", 2, now.Add(-2*time.Hour))
		third := approved(ids[2], "casual", 1, now.Add(-1*time.Hour))

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[0].String()).Return(first, nil)
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[1].String()).Return(second, nil)
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[2].String()).Return(third, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), first).Return(nil)
		d.repo.EXPECT().Update(gomock.Any(), third).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, start.With(domain.LeaveCasual, 0)).Return(nil)
		d.sqlMock.ExpectCommit()
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")

		res, err := d.engine.ProcessBatch(context.Background(), "stu-1", []string{ids[2].String(), ids[0].String(), ids[1].String(), ids[0].String()})

		assert.NoError(t, err)
		assert.Len(t, res.Results, 3)
		assert.Equal(t, processing.OutcomeProcessed, res.Results[0].Outcome)
		assert.Equal(t, 1, res.Results[0].BalanceAfter.Casual)
		assert.Equal(t, processing.OutcomeSkipped, res.Results[1].Outcome)
		assert.Equal(t, processing.OutcomeProcessed, res.Results[2].Outcome)
		assert.Equal(t, 0, res.Results[2].BalanceAfter.Casual)
		assert.Equal(t, 0, res.Balance.Casual)
		assert.Equal(t, 2, res.Processed())
		assert.False(t, second.Processed)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("application of another applicant is not touched", func(t *testing.T) {
		d := setupEngineTest(t)
		ids := orderedIDs(1)
		other := approved(ids[0], "casual", 1, now)
		other.ApplicantID = "stu-2"

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[0].String()).Return(other, nil)
		d.sqlMock.ExpectRollback()

		res, err := d.engine.ProcessBatch(context.Background(), "stu-1", []string{ids[0].String()})

		assert.NoError(t, err)
		assert.Equal(t, processing.OutcomeNotFound, res.Results[0].Outcome)
	})

	t.Run("commit conflict resynchronizes the cache", func(t *testing.T) {
		d := setupEngineTest(t)
		ids := orderedIDs(1)
		app := approved(ids[0], "medical", 1, now)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[0].String()).Return(app, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), app).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit().WillReturnError(errors.New("could not serialize access due to concurrent update"))
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")
		d.ledger.EXPECT().GetCachedBalance(gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)

		_, err := d.engine.ProcessBatch(context.Background(), "stu-1", []string{ids[0].String()})

		assert.Error(t, err)
	})

	t.Run("applicant is required", func(t *testing.T) {
		d := setupEngineTest(t)

		_, err := d.engine.ProcessBatch(context.Background(), "", nil)

		assert.Error(t, err)
	})
}

func TestEngine_ProcessApplicant(t *testing.T) {
	t.Run("nothing approved", func(t *testing.T) {
		d := setupEngineTest(t)
		d.repo.EXPECT().ListApprovedUnprocessedByApplicant(gomock.Any(), "stu-1").Return(nil, nil)

		res, err := d.engine.ProcessApplicant(context.Background(), "stu-1")

		assert.NoError(t, err)
		assert.Empty(t, res.Results)
	})

	t.Run("settles the approved applications", func(t *testing.T) {
		d := setupEngineTest(t)
		id := uuid.New()
		app := approved(id, "personal", 1, time.Now())
		start := domain.Allowance{Casual: 10, Medical: 15, Emergency: 5, Personal: 5}

		d.repo.EXPECT().ListApprovedUnprocessedByApplicant(gomock.Any(), "stu-1").Return([]leave.LeaveApplication{*app}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), id.String()).Return(app, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), app).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, start.Deduct(domain.LeavePersonal, 1)).Return(nil)
		d.sqlMock.ExpectCommit()
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")

		res, err := d.engine.ProcessApplicant(context.Background(), "stu-1")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Processed())
	})
}

func TestEngine_ProcessPending(t *testing.T) {
	start := domain.Allowance{Casual: 10, Medical: 15, Emergency: 5, Personal: 5}

	t.Run("one batch per applicant and failures are left for later", func(t *testing.T) {
		d := setupEngineTest(t)

		a := approved(uuid.New(), "casual", 1, time.Now())
		b := approved(uuid.New(), "casual", 1, time.Now())
		b.ApplicantID = "tch-1"
		b.ApplicantType = string(domain.RoleTeacher)

		d.repo.EXPECT().ListApprovedUnprocessed(gomock.Any(), leave.SettlementCursor{}, 50).Return([]leave.LeaveApplication{*a, *b}, nil)

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), a.ID.String()).Return(a, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), a).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-1", domain.RoleStudent, gomock.Any()).Return(nil)
		d.sqlMock.ExpectCommit()
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-1")

		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID.String()).Return(nil, errors.New("connection reset"))
		d.ledger.EXPECT().Invalidate(gomock.Any(), "tch-1")
		d.sqlMock.ExpectRollback()

		n, err := d.engine.ProcessPending(context.Background(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})

	t.Run("skipped applications do not hold back newer ones", func(t *testing.T) {
		d := setupEngineTest(t)
		base := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
		ids := orderedIDs(3)

		stuckA := approved(ids[0], "casual", 20, base)
		stuckB := approved(ids[1], "casual", 20, base.Add(time.Minute))
		stuckA.ApplicantID, stuckB.ApplicantID = "stu-a", "stu-a"
		fresh := approved(ids[2], "casual", 1, base.Add(time.Hour))
		fresh.ApplicantID = "stu-c"

		// First pass: a full page of applications the balance cannot cover.
		d.repo.EXPECT().ListApprovedUnprocessed(gomock.Any(), leave.SettlementCursor{}, 2).Return([]leave.LeaveApplication{*stuckA, *stuckB}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[0].String()).Return(stuckA, nil)
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[1].String()).Return(stuckB, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-a", domain.RoleStudent).Return(start, nil)
		d.sqlMock.ExpectCommit()

		n, err := d.engine.ProcessPending(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, 0, n)

		// Second pass resumes after the stuck page and reaches the fresh one.
		afterStuck := leave.SettlementCursor{CreatedAt: stuckB.CreatedAt, ID: stuckB.ID}
		d.repo.EXPECT().ListApprovedUnprocessed(gomock.Any(), afterStuck, 2).Return([]leave.LeaveApplication{*fresh}, nil)
		d.sqlMock.ExpectBegin()
		d.repo.EXPECT().FindByIDForUpdate(gomock.Any(), ids[2].String()).Return(fresh, nil)
		d.ledger.EXPECT().LockForUpdate(gomock.Any(), gomock.Any(), "stu-c", domain.RoleStudent).Return(start, nil)
		d.repo.EXPECT().Update(gomock.Any(), fresh).Return(nil)
		d.ledger.EXPECT().Overwrite(gomock.Any(), gomock.Any(), "stu-c", domain.RoleStudent, start.Deduct(domain.LeaveCasual, 1)).Return(nil)
		d.sqlMock.ExpectCommit()
		d.ledger.EXPECT().Invalidate(gomock.Any(), "stu-c")

		n, err = d.engine.ProcessPending(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.True(t, fresh.Processed)

		// A short page wraps the scan back to the oldest application.
		d.repo.EXPECT().ListApprovedUnprocessed(gomock.Any(), leave.SettlementCursor{}, 2).Return(nil, nil)

		n, err = d.engine.ProcessPending(context.Background(), 2)
		assert.NoError(t, err)
		assert.Equal(t, 0, n)
		assert.False(t, stuckA.Processed)
		assert.NoError(t, d.sqlMock.ExpectationsWereMet())
	})
}
