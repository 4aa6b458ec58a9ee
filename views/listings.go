package views

import (
	"context"
	"sync"

	"moonhem/gateway"
	"moonhem/models"
	"moonhem/services"
	"moonhem/utils"
)

// ListingsView owns the main search page state: the filter form, the
// current page, and the last listing set the server returned. The
// search pipeline runs over that set on every Snapshot, so filter
// edits are reflected immediately even while a refetch is in flight.
type ListingsView struct {
	api      gateway.API
	norm     *services.Normalizer
	logger   *utils.Logger
	pageSize int

	mu      sync.Mutex
	gen     uint64
	closed  bool
	filters models.FilterState
	page    int
	raw     []*models.Listing
	status  Status
	errMsg  string
}

// ListingsSnapshot is a consistent read of the view for rendering.
type ListingsSnapshot struct {
	Filters models.FilterState
	Result  models.ResultPage
	Status  Status
	Error   string
}

// NewListingsView creates a listings view with default filters.
func NewListingsView(api gateway.API, norm *services.Normalizer, logger *utils.Logger, pageSize int) *ListingsView {
	return &ListingsView{
		api:      api,
		norm:     norm,
		logger:   logger,
		pageSize: pageSize,
		filters:  models.DefaultFilters(),
		page:     1,
		status:   StatusIdle,
	}
}

// SetFilters replaces the filter state and reports whether it changed.
// Any change resets pagination to the first page and invalidates
// fetches still in flight.
func (v *ListingsView) SetFilters(f models.FilterState) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if f == v.filters {
		return false
	}
	v.filters = f
	v.page = 1
	v.gen++
	return true
}

// SetPage moves pagination without touching filters; the page is
// clamped later by the pipeline, and no refetch is needed.
func (v *ListingsView) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Loaded reports whether a listing set has ever been applied.
func (v *ListingsView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.raw != nil
}

// Filters returns the current filter state.
func (v *ListingsView) Filters() models.FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters
}

// Refresh fetches the listing set for the current filters and applies
// it unless the view moved on while the request was out. There is no
// retry: a failed request surfaces its message and ends the attempt.
func (v *ListingsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	gen := v.gen
	filters := v.filters
	v.status = StatusLoading
	v.errMsg = ""
	v.mu.Unlock()

	raw, err := v.api.SearchListings(ctx, filters)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.gen != gen {
		v.logger.Debug("[views] stale listings response discarded")
		return
	}
	if err != nil {
		v.status = StatusError
		v.errMsg = err.Error()
		v.raw = nil
		return
	}
	v.raw = v.norm.Listings(raw)
	v.status = StatusIdle
}

// Snapshot runs the filter pipeline over the last applied set and
// returns everything the page needs to render.
func (v *ListingsView) Snapshot() ListingsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ListingsSnapshot{
		Filters: v.filters,
		Result:  services.Search(v.raw, v.filters, v.page, v.pageSize),
		Status:  v.status,
		Error:   v.errMsg,
	}
}

// Find returns the listing with the given id from the current set, or
// nil. Synthetic IDs resolve only within the batch that produced them.
func (v *ListingsView) Find(id string) *models.Listing {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, l := range v.raw {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Close tears the view down; responses arriving afterwards are dropped.
func (v *ListingsView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}
