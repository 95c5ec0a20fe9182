package employee

import "time"

type Employee struct {
	ID             string    `json:"id"`
	EmployeeCode   string    `json:"employeeId,omitempty"`
	Name           string    `json:"name"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Department     string    `json:"department,omitempty"`
	Designation    string    `json:"designation"`
	Salary         int64     `json:"salary"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	JoiningDate    string    `json:"joiningDate,omitempty"`
	ProfilePic     string    `json:"profilePic,omitempty"`
	LeadID         string    `json:"leadId,omitempty"`
	AllowedModules []string  `json:"allowedModules"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Credentials pairs an employee with the stored password hash; it never
// leaves the auth handler.
type Credentials struct {
	Employee
	PasswordHash string
}

type CreateParams struct {
	EmployeeCode   string
	Name           string
	Username       string
	PasswordHash   string
	Email          string
	Phone          string
	Department     string
	Designation    string
	Salary         int64
	Role           string
	Status         string
	JoiningDate    string
	ProfilePic     string
	LeadID         string
	AllowedModules []string
}

// UpdateParams carries partial updates; nil fields are left untouched.
type UpdateParams struct {
	EmployeeCode   *string
	Name           *string
	Username       *string
	PasswordHash   *string
	Email          *string
	Phone          *string
	Department     *string
	Designation    *string
	Salary         *int64
	Role           *string
	Status         *string
	JoiningDate    *string
	ProfilePic     *string
	LeadID         *string
	AllowedModules *[]string
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
