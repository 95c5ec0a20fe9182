package appeal

import "testing"

func TestValidType(t *testing.T) {
	for _, typ := range []Type{TypeAbsent, TypeLate, TypeFine, TypeSalary, TypeOther} {
		if !ValidType(typ) {
			t.Fatalf("ValidType(%q) = false, want true", typ)
		}
	}
	if ValidType("Bonus") {
		t.Fatal("ValidType(Bonus) = true, want false")
	}
	if ValidType("") {
		t.Fatal("ValidType(empty) = true, want false")
	}
}

func TestValidDecision(t *testing.T) {
	if !ValidDecision(StatusApproved) || !ValidDecision(StatusRejected) {
		t.Fatal("terminal statuses should be valid decisions")
	}
	if ValidDecision(StatusPending) {
		t.Fatal("Pending is not a decision")
	}
	if ValidDecision("approved") {
		t.Fatal("decisions are case sensitive")
	}
}
