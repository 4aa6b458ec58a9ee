package services

import (
	"math"

	"moonhem/models"
)

// EstimateLoan computes the down payment and fixed monthly payment for
// the given terms using the standard annuity formula. Unusable inputs
// degrade to 0; the function never errors. The result is a display
// estimate only, excluding fees and insurance.
func EstimateLoan(t models.LoanTerms) models.LoanQuote {
	price := finiteOrZero(t.Price)
	downPct := finiteOrZero(t.DownPct)
	ratePct := finiteOrZero(t.RatePct)

	principal := math.Max(0, price*(1-downPct/100))
	downPayment := math.Max(0, price*downPct/100)

	r := ratePct / 100 / 12
	n := t.Years * 12

	var monthly float64
	switch {
	case n <= 0:
		monthly = 0
	case r == 0:
		monthly = principal / float64(n)
	default:
		monthly = principal * r / (1 - math.Pow(1+r, -float64(n)))
	}

	return models.LoanQuote{
		Principal:   principal,
		DownPayment: downPayment,
		Monthly:     monthly,
	}
}

func finiteOrZero(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
