package domain

import (
	"net/http"
	"time"

	"go-school/internal/shared/apperror"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// IsApplicant reports whether the role owns a leave balance.
func (r Role) IsApplicant() bool {
	return r == RoleStudent || r == RoleTeacher
}

func ParseApplicantRole(v string) (Role, error) {
	r := Role(v)
	if !r.IsApplicant() {
		return "", ErrInvalidRole
	}
	return r, nil
}

type LeaveType string

const (
	LeaveCasual    LeaveType = "casual"
	LeaveMedical   LeaveType = "medical"
	LeaveEmergency LeaveType = "emergency"
	LeavePersonal  LeaveType = "personal"
)

var LeaveTypes = []LeaveType{LeaveCasual, LeaveMedical, LeaveEmergency, LeavePersonal}

func ParseLeaveType(v string) (LeaveType, error) {
	for _, t := range LeaveTypes {
		if string(t) == v {
			return t, nil
		}
	}
	return "", ErrInvalidLeaveType
}

// Allowance is the per leave type day count shared by quotas and balances.
type Allowance struct {
	Casual    int `json:"casual"`
	Medical   int `json:"medical"`
	Emergency int `json:"emergency"`
	Personal  int `json:"personal"`
}

func (a Allowance) Get(t LeaveType) int {
	switch t {
	case LeaveCasual:
		return a.Casual
	case LeaveMedical:
		return a.Medical
	case LeaveEmergency:
		return a.Emergency
	case LeavePersonal:
		return a.Personal
	default:
		return 0
	}
}

func (a Allowance) With(t LeaveType, days int) Allowance {
	switch t {
	case LeaveCasual:
		a.Casual = days
	case LeaveMedical:
		a.Medical = days
	case LeaveEmergency:
		a.Emergency = days
	case LeavePersonal:
		a.Personal = days
	}
	return a
}

// Deduct returns a copy with days removed from t. It does not floor at zero.
func (a Allowance) Deduct(t LeaveType, days int) Allowance {
	return a.With(t, a.Get(t)-days)
}

func (a Allowance) HasNegative() bool {
	return a.Casual < 0 || a.Medical < 0 || a.Emergency < 0 || a.Personal < 0
}

// RepairAllowance builds an Allowance from nullable stored columns in
// casual, medical, emergency, personal order. Missing or negative columns take
// the fallback value and the second return value reports that.
func RepairAllowance(fields [4]*int, fallback Allowance) (Allowance, bool) {
	repaired := false
	pick := func(v *int, def int) int {
		if v == nil || *v < 0 {
			repaired = true
			return def
		}
		return *v
	}

	a := Allowance{
		Casual:    pick(fields[0], fallback.Casual),
		Medical:   pick(fields[1], fallback.Medical),
		Emergency: pick(fields[2], fallback.Emergency),
		Personal:  pick(fields[3], fallback.Personal),
	}
	return a, repaired
}

// Fields exposes a as nullable columns in RepairAllowance order.
func (a Allowance) Fields() [4]*int {
	return [4]*int{&a.Casual, &a.Medical, &a.Emergency, &a.Personal}
}

const DateLayout = "2006-01-02"

// bucketLayout is month+day of the submission, the partition key the
// dashboards use to locate an application.
const bucketLayout = "01-02"

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// InclusiveDayCount counts calendar days from start to end, both included.
func InclusiveDayCount(start, end time.Time) (int, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if start.After(end) {
		return 0, ErrInvalidDateRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

func InclusiveDayCountString(start, end string) (int, error) {
	s, err := ParseDate(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return 0, err
	}
	return InclusiveDayCount(s, e)
}

func DateBucket(t time.Time) string {
	return t.UTC().Format(bucketLayout)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var (
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be student or teacher",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"leave_type must be one of casual, medical, emergency, personal",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
)
