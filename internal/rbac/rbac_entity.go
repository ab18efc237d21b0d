package rbac

import "time"

const (
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleSupervisor = "supervisor"
)

type Policy struct {
	ID        uint      `gorm:"primaryKey"`
	Role      string    `gorm:"not null;uniqueIndex:uq_rbac_policy"`
	Resource  string    `gorm:"not null;uniqueIndex:uq_rbac_policy"`
	Action    string    `gorm:"not null;uniqueIndex:uq_rbac_policy"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Policy) TableName() string {
	return "rbac_policies"
}

// DefaultPolicies is seeded into an empty rbac_policies table.
func DefaultPolicies() []Policy {
	return []Policy{
		{Role: RoleAdmin, Resource: "*", Action: "*"},

		{Role: RoleAccountant, Resource: "worker", Action: "read"},
		{Role: RoleAccountant, Resource: "advance", Action: "*"},
		{Role: RoleAccountant, Resource: "salary_bonus", Action: "*"},
		{Role: RoleAccountant, Resource: "working_days", Action: "update"},
		{Role: RoleAccountant, Resource: "payroll", Action: "read"},
		{Role: RoleAccountant, Resource: "payroll", Action: "create"},
		{Role: RoleAccountant, Resource: "payroll", Action: "delete"},
		{Role: RoleAccountant, Resource: "payroll", Action: "approve"},
		{Role: RoleAccountant, Resource: "payroll", Action: "pay"},
		{Role: RoleAccountant, Resource: "payroll_settings", Action: "read"},

		{Role: RoleSupervisor, Resource: "worker", Action: "read"},
		{Role: RoleSupervisor, Resource: "worker", Action: "create"},
		{Role: RoleSupervisor, Resource: "worker", Action: "update"},
		{Role: RoleSupervisor, Resource: "payroll", Action: "read"},
		{Role: RoleSupervisor, Resource: "working_days", Action: "update"},
	}
}
