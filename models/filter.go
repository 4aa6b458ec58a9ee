package models

// Sort modes accepted by the search pipeline and the listings API.
// "newest" trusts the server's incoming order and performs no date
// comparison of its own.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortAreaDesc  = "area_desc"
)

// Property-type selector values. TypeAll bypasses the type filter.
const (
	TypeAll       = "all"
	TypeApartment = "apartment"
	TypeHouse     = "house"
	TypeTownhouse = "townhouse"
	TypePlot      = "plot"
)

// FilterState is the complete listing search state. The numeric bounds
// stay raw strings straight from user input: a bound that does not
// parse to a finite number is treated as "no bound", never as
// "match nothing".
type FilterState struct {
	Query    string
	Type     string
	RoomsMin string
	RoomsMax string
	PriceMin string
	PriceMax string
	Sort     string
}

// DefaultFilters returns the initial search state.
func DefaultFilters() FilterState {
	return FilterState{Type: TypeAll, Sort: SortNewest}
}

// LoanTerms are the inputs of the loan estimate on the detail page.
type LoanTerms struct {
	Price   float64
	DownPct float64
	RatePct float64
	Years   int
}

// DefaultLoanTerms returns the terms pre-filled for a listing.
func DefaultLoanTerms(price float64) LoanTerms {
	return LoanTerms{Price: price, DownPct: 15, RatePct: 3.5, Years: 30}
}

// LoanQuote is a display estimate only; it excludes fees, insurance,
// and taxes.
type LoanQuote struct {
	Principal   float64
	DownPayment float64
	Monthly     float64
}
