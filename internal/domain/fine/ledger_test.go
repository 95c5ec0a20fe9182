package fine

import "testing"

var sample = []Fine{
	{ID: "1", EmployeeID: "e1", Amount: 500, Status: StatusUnpaid},
	{ID: "2", EmployeeID: "e1", Amount: 300, Status: StatusPaid},
	{ID: "3", EmployeeID: "e1", Amount: 200, Status: StatusUnpaid},
	{ID: "4", EmployeeID: "e2", Amount: 1000, Status: StatusUnpaid},
}

func TestUnpaidTotal(t *testing.T) {
	if got := UnpaidTotal(sample, "e1"); got != 700 {
		t.Fatalf("UnpaidTotal(e1) = %d, want 700", got)
	}
	if got := UnpaidTotal(sample, "e3"); got != 0 {
		t.Fatalf("UnpaidTotal(e3) = %d, want 0", got)
	}
}

func TestPaidTotal(t *testing.T) {
	if got := PaidTotal(sample, "e1"); got != 300 {
		t.Fatalf("PaidTotal(e1) = %d, want 300", got)
	}
}

func TestAggregate(t *testing.T) {
	got := Aggregate(sample)
	if got.Unpaid != 1700 || got.Paid != 300 {
		t.Fatalf("Aggregate() = %+v, want unpaid 1700 paid 300", got)
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil)
	if got.Unpaid != 0 || got.Paid != 0 {
		t.Fatalf("Aggregate(nil) = %+v, want zeros", got)
	}
}
