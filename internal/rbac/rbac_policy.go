package rbac

import "go-school/internal/domain"

// Policy grants action on resource to a role or group.
type Policy struct {
	Subject  string
	Resource string
	Action   string
}

// Grouping puts Role into Group.
type Grouping struct {
	Role  string
	Group string
}

const GroupApplicant = "applicant"

var DefaultPolicies = []Policy{
	{GroupApplicant, "leave", "create"},
	{GroupApplicant, "leave", "read"},
	{GroupApplicant, "balance", "read"},
	{GroupApplicant, "quota", "read"},

	{string(domain.RoleAdmin), "leave", "read"},
	{string(domain.RoleAdmin), "leave", "review"},
	{string(domain.RoleAdmin), "balance", "read"},
	{string(domain.RoleAdmin), "balance", "read_all"},
	{string(domain.RoleAdmin), "balance", "update"},
	{string(domain.RoleAdmin), "quota", "read"},
	{string(domain.RoleAdmin), "quota", "update"},
}

var DefaultGroupings = []Grouping{
	{string(domain.RoleStudent), GroupApplicant},
	{string(domain.RoleTeacher), GroupApplicant},
}
