package auth

// Module keys gate which screens a user can reach. Roles carry a default
// set; an employee's allowed_modules column and a lead's lead_permissions
// row can narrow or widen it per user.
const (
	ModuleDashboard  = "dashboard"
	ModuleEmployees  = "employees"
	ModuleAttendance = "attendance"
	ModuleLeave      = "leave"
	ModuleFines      = "fines"
	ModuleSalary     = "salary"
	ModulePayroll    = "payroll"
	ModuleSettings   = "settings"
	ModuleLead       = "lead"
	ModuleAppeals    = "appeals"
)

var AllModules = []string{
	ModuleDashboard,
	ModuleEmployees,
	ModuleAttendance,
	ModuleLeave,
	ModuleFines,
	ModuleSalary,
	ModulePayroll,
	ModuleSettings,
	ModuleLead,
	ModuleAppeals,
}

var DefaultModules = map[string][]string{
	RoleAdmin: {
		ModuleDashboard,
		ModuleEmployees,
		ModuleAttendance,
		ModuleLeave,
		ModuleFines,
		ModulePayroll,
		ModuleSettings,
		ModuleLead,
		ModuleAppeals,
	},
	RoleLead: {
		ModuleDashboard,
		ModuleAttendance,
		ModuleLeave,
		ModuleAppeals,
	},
	RoleEmployee: {
		ModuleDashboard,
		ModuleAttendance,
		ModuleLeave,
		ModuleFines,
		ModuleSalary,
	},
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEmployee, RoleLead:
		return true
	}
	return false
}
