package services

import (
	"math"
	"testing"

	"moonhem/models"
)

func TestEstimateLoanZeroRate(t *testing.T) {
	q := EstimateLoan(models.LoanTerms{Price: 1000000, DownPct: 20, RatePct: 0, Years: 25})

	if q.Principal != 800000 {
		t.Errorf("principal = %v, want 800000", q.Principal)
	}
	if q.DownPayment != 200000 {
		t.Errorf("down payment = %v, want 200000", q.DownPayment)
	}
	want := 800000.0 / 300
	if math.Abs(q.Monthly-want) > 0.01 {
		t.Errorf("monthly = %v, want %v", q.Monthly, want)
	}
}

func TestEstimateLoanAnnuity(t *testing.T) {
	q := EstimateLoan(models.LoanTerms{Price: 2000000, DownPct: 15, RatePct: 3.5, Years: 30})

	if q.Principal != 1700000 {
		t.Errorf("principal = %v, want 1700000", q.Principal)
	}
	if got := math.Round(q.Monthly); got != 7633 {
		t.Errorf("monthly = %v, want ≈ 7633 rounded", q.Monthly)
	}
}

func TestEstimateLoanDegradedInputs(t *testing.T) {
	tests := []struct {
		name  string
		terms models.LoanTerms
	}{
		{"zero term", models.LoanTerms{Price: 1000000, DownPct: 15, RatePct: 3.5, Years: 0}},
		{"negative term", models.LoanTerms{Price: 1000000, DownPct: 15, RatePct: 3.5, Years: -5}},
		{"nan price", models.LoanTerms{Price: math.NaN(), DownPct: 15, RatePct: 3.5, Years: 30}},
		{"inf rate", models.LoanTerms{Price: 1000000, DownPct: 15, RatePct: math.Inf(1), Years: 30}},
	}

	for _, tt := range tests {
		q := EstimateLoan(tt.terms)
		if math.IsNaN(q.Monthly) || math.IsInf(q.Monthly, 0) {
			t.Errorf("%s: monthly must stay finite, got %v", tt.name, q.Monthly)
		}
		if math.IsNaN(q.DownPayment) || math.IsInf(q.DownPayment, 0) {
			t.Errorf("%s: down payment must stay finite, got %v", tt.name, q.DownPayment)
		}
	}
}

func TestEstimateLoanFullDownPayment(t *testing.T) {
	q := EstimateLoan(models.LoanTerms{Price: 1000000, DownPct: 100, RatePct: 3.5, Years: 30})
	if q.Principal != 0 {
		t.Errorf("principal = %v, want 0", q.Principal)
	}
	if q.Monthly != 0 {
		t.Errorf("monthly = %v, want 0", q.Monthly)
	}
	if q.DownPayment != 1000000 {
		t.Errorf("down payment = %v, want full price", q.DownPayment)
	}
}
