package payroll

const (
	StatusPending = "Pending"
	StatusPaid    = "Paid"
)

// The payroll sheet only recognizes the digital-commerce track; anything
// else on an employee record falls back to the trainee grade.
const DefaultDesignation = "Digital Commerce Trainee"

var AllowedDesignations = map[string]struct{}{
	"Digital Commerce Trainee":     {},
	"Digital Commerce Probationer": {},
	"Digital Commerce Associate":   {},
}

// NormalizeDesignation maps an employee's recorded designation onto the
// payroll sheet's allowed set.
func NormalizeDesignation(d string) string {
	if _, ok := AllowedDesignations[d]; ok {
		return d
	}
	return DefaultDesignation
}
