package auth

import "testing"

func TestAllowed(t *testing.T) {
	grants := []string{ModuleAttendance, ModuleLeave}

	if !Allowed(RoleAdmin, nil, ModuleSettings) {
		t.Fatal("admins hold every module")
	}
	if !Allowed(RoleLead, grants, ModuleAttendance) {
		t.Fatal("lead with a grant should be allowed")
	}
	if Allowed(RoleLead, grants, ModulePayroll) {
		t.Fatal("lead without a grant should be refused")
	}
	if Allowed(RoleEmployee, grants, ModuleAttendance) {
		t.Fatal("employees are not module gated and never pass")
	}
	if Allowed(RoleLead, nil, ModuleAttendance) {
		t.Fatal("lead with no grants should be refused")
	}
}
