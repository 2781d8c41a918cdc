package balance_test

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"go-school/internal/balance"
	"go-school/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memRepository keeps balances and reset records in maps. Transactions are
// not isolated, which is enough for sequential flows.
type memRepository struct {
	mu       sync.Mutex
	balances map[string]balance.LeaveBalance
	records  map[string]balance.ResetRecord
}

func newMemRepository() *memRepository {
	return &memRepository{
		balances: map[string]balance.LeaveBalance{},
		records:  map[string]balance.ResetRecord{},
	}
}

func (m *memRepository) WithTx(tx *sql.Tx) balance.Repository { return m }

func (m *memRepository) FindByApplicant(ctx context.Context, applicantID string) (*balance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.balances[applicantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &b, nil
}

func (m *memRepository) FindByApplicantForUpdate(ctx context.Context, applicantID string) (*balance.LeaveBalance, error) {
	return m.FindByApplicant(ctx, applicantID)
}

func (m *memRepository) InsertIfAbsent(ctx context.Context, b *balance.LeaveBalance, rec *balance.ResetRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.balances[b.ApplicantID]; ok {
		return false, nil
	}
	m.balances[b.ApplicantID] = *b
	if rec != nil {
		m.upsertRecord(*rec)
	}
	return true, nil
}

func (m *memRepository) Save(ctx context.Context, b *balance.LeaveBalance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[b.ApplicantID] = *b
	return nil
}

func (m *memRepository) FindResetRecord(ctx context.Context, applicantID string) (*balance.ResetRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[applicantID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &rec, nil
}

func (m *memRepository) SaveResetRecord(ctx context.Context, rec *balance.ResetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertRecord(*rec)
	return nil
}

func (m *memRepository) InsertResetRecordIfAbsent(ctx context.Context, rec *balance.ResetRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ApplicantID]; !ok {
		m.records[rec.ApplicantID] = *rec
	}
	return nil
}

func (m *memRepository) ListAfter(ctx context.Context, afterApplicantID string, limit int) ([]balance.LeaveBalance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.balances))
	for id := range m.balances {
		if id > afterApplicantID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	rows := make([]balance.LeaveBalance, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, m.balances[id])
	}
	return rows, nil
}

func (m *memRepository) upsertRecord(rec balance.ResetRecord) {
	if prev, ok := m.records[rec.ApplicantID]; ok && prev.Year > rec.Year {
		rec.Year = prev.Year
	}
	m.records[rec.ApplicantID] = rec
}

type lifecycle struct {
	repo    *memRepository
	sqlMock sqlmock.Sqlmock
	service balance.Service
	now     time.Time
}

func newLifecycle(t *testing.T, now time.Time) *lifecycle {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := &lifecycle{repo: newMemRepository(), sqlMock: sqlMock, now: now}
	l.service = balance.NewService(db, l.repo, &fakeQuotaProvider{}, nil,
		balance.WithClock(func() time.Time { return l.now }),
	)
	return l
}

func TestBalanceLifecycle(t *testing.T) {
	ctx := context.Background()
	june := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	adminSet := domain.Allowance{Casual: 2, Medical: 15, Emergency: 5, Personal: 5}

	t.Run("first read records the current year", func(t *testing.T) {
		l := newLifecycle(t, june)

		_, err := l.service.GetBalance(ctx, "stu-9", domain.RoleStudent)
		assert.NoError(t, err)

		rec, err := l.repo.FindResetRecord(ctx, "stu-9")
		assert.NoError(t, err)
		assert.Equal(t, 2026, rec.Year)
	})

	t.Run("admin set after first read survives the session check", func(t *testing.T) {
		l := newLifecycle(t, june)

		_, err := l.service.GetBalance(ctx, "stu-9", domain.RoleStudent)
		assert.NoError(t, err)

		l.sqlMock.ExpectBegin()
		l.sqlMock.ExpectCommit()
		assert.NoError(t, l.service.SetBalance(ctx, "stu-9", domain.RoleStudent, adminSet))

		got, err := l.service.EnsureCurrent(ctx, "stu-9", domain.RoleStudent)

		assert.NoError(t, err)
		assert.Equal(t, adminSet, got)
		assert.NoError(t, l.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin set on a fresh applicant survives the session check", func(t *testing.T) {
		l := newLifecycle(t, june)

		l.sqlMock.ExpectBegin()
		l.sqlMock.ExpectCommit()
		assert.NoError(t, l.service.SetBalance(ctx, "stu-9", domain.RoleStudent, adminSet))

		got, err := l.service.EnsureCurrent(ctx, "stu-9", domain.RoleStudent)

		assert.NoError(t, err)
		assert.Equal(t, adminSet, got)
		assert.NoError(t, l.sqlMock.ExpectationsWereMet())
	})

	t.Run("next year still resets", func(t *testing.T) {
		l := newLifecycle(t, june)

		l.sqlMock.ExpectBegin()
		l.sqlMock.ExpectCommit()
		assert.NoError(t, l.service.SetBalance(ctx, "stu-9", domain.RoleStudent, adminSet))

		l.now = time.Date(2027, time.January, 3, 9, 0, 0, 0, time.UTC)
		l.sqlMock.ExpectBegin()
		l.sqlMock.ExpectCommit()

		got, err := l.service.EnsureCurrent(ctx, "stu-9", domain.RoleStudent)

		assert.NoError(t, err)
		assert.Equal(t, studentQuota, got)
		rec, _ := l.repo.FindResetRecord(ctx, "stu-9")
		assert.Equal(t, 2027, rec.Year)
		assert.NoError(t, l.sqlMock.ExpectationsWereMet())
	})
}
