package views

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"moonhem/models"
	"moonhem/services"
	"moonhem/utils"
)

// fakeAPI substitutes the remote server with per-test closures.
type fakeAPI struct {
	mu        sync.Mutex
	search    func(ctx context.Context, f models.FilterState) ([]models.RawRecord, error)
	users     func(ctx context.Context) ([]models.RawRecord, error)
	login     func(ctx context.Context, email, password string) (*models.User, error)
	send      func(ctx context.Context, m models.Message) error
	sendCalls int
	sent      []models.Message
}

func (f *fakeAPI) SearchListings(ctx context.Context, fs models.FilterState) ([]models.RawRecord, error) {
	return f.search(ctx, fs)
}

func (f *fakeAPI) Users(ctx context.Context) ([]models.RawRecord, error) {
	return f.users(ctx)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.User, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAPI) SendMessage(ctx context.Context, m models.Message) error {
	f.mu.Lock()
	f.sendCalls++
	f.sent = append(f.sent, m)
	f.mu.Unlock()
	if f.send != nil {
		return f.send(ctx, m)
	}
	return nil
}

func rawBatch(n int) []models.RawRecord {
	out := make([]models.RawRecord, n)
	for i := range out {
		out[i] = models.RawRecord{
			"id":    float64(i + 1),
			"price": float64((i + 1) * 100000),
		}
	}
	return out
}

func newListingsView(api *fakeAPI) *ListingsView {
	norm := services.NewNormalizer(utils.NewLogger(false))
	return NewListingsView(api, norm, utils.NewLogger(false), 9)
}

func TestListingsRefreshAndSnapshot(t *testing.T) {
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			return rawBatch(25), nil
		},
	}
	v := newListingsView(api)

	if v.Loaded() {
		t.Error("fresh view should not report loaded")
	}

	v.Refresh(context.Background())
	snap := v.Snapshot()
	if snap.Status != StatusIdle || snap.Error != "" {
		t.Errorf("status = %v error = %q", snap.Status, snap.Error)
	}
	if snap.Result.Total != 25 || snap.Result.PageCount != 3 {
		t.Errorf("result = %+v", snap.Result)
	}
	if !v.Loaded() {
		t.Error("view should report loaded after a successful refresh")
	}
}

func TestListingsFilterEditWithoutRefetch(t *testing.T) {
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			return rawBatch(25), nil
		},
	}
	v := newListingsView(api)
	v.Refresh(context.Background())

	f := v.Filters()
	f.PriceMin = "2000000"
	if !v.SetFilters(f) {
		t.Fatal("SetFilters should report a change")
	}
	if v.SetFilters(f) {
		t.Error("identical filters should report no change")
	}

	snap := v.Snapshot()
	if snap.Result.Total != 6 {
		t.Errorf("pipeline should rerun over the cached set, total = %d", snap.Result.Total)
	}
}

func TestListingsFilterChangeResetsPage(t *testing.T) {
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			return rawBatch(25), nil
		},
	}
	v := newListingsView(api)
	v.Refresh(context.Background())
	v.SetPage(3)

	if got := v.Snapshot().Result.Page; got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}

	f := v.Filters()
	f.Query = "new search"
	v.SetFilters(f)

	if got := v.Snapshot().Result.Page; got != 1 {
		t.Errorf("filter change should reset to page 1, got %d", got)
	}
}

func TestListingsStaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{}
	api.search = func(_ context.Context, f models.FilterState) ([]models.RawRecord, error) {
		if f.Query == "slow" {
			close(started)
			<-release
			return rawBatch(1), nil
		}
		return rawBatch(25), nil
	}
	v := newListingsView(api)

	f := v.Filters()
	f.Query = "slow"
	v.SetFilters(f)

	done := make(chan struct{})
	go func() {
		v.Refresh(context.Background())
		close(done)
	}()
	<-started

	f.Query = "fast"
	v.SetFilters(f)
	v.Refresh(context.Background())

	close(release)
	<-done

	snap := v.Snapshot()
	if snap.Result.Total != 25 {
		t.Errorf("stale single-listing response should be discarded, total = %d", snap.Result.Total)
	}
	if snap.Status != StatusIdle {
		t.Errorf("status = %v", snap.Status)
	}
}

func TestListingsRefreshAfterCloseDropped(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			close(started)
			<-release
			return rawBatch(3), nil
		},
	}
	v := newListingsView(api)

	done := make(chan struct{})
	go func() {
		v.Refresh(context.Background())
		close(done)
	}()
	<-started

	v.Close()
	close(release)
	<-done

	if v.Loaded() {
		t.Error("a response landing after Close must not be applied")
	}
}

func TestListingsRefreshError(t *testing.T) {
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			return nil, errors.New("API 500: database down")
		},
	}
	v := newListingsView(api)
	v.Refresh(context.Background())

	snap := v.Snapshot()
	if snap.Status != StatusError {
		t.Errorf("status = %v, want error", snap.Status)
	}
	if snap.Error != "API 500: database down" {
		t.Errorf("error = %q", snap.Error)
	}
	if snap.Result.Total != 0 {
		t.Errorf("failed refresh should leave no listings, total = %d", snap.Result.Total)
	}
}

func TestListingsFind(t *testing.T) {
	api := &fakeAPI{
		search: func(context.Context, models.FilterState) ([]models.RawRecord, error) {
			return rawBatch(5), nil
		},
	}
	v := newListingsView(api)
	v.Refresh(context.Background())

	if got := v.Find("3"); got == nil || got.ID != "3" {
		t.Errorf("Find(3) = %v", got)
	}
	if got := v.Find("99"); got != nil {
		t.Errorf("Find(99) should miss, got %v", got)
	}
}

func TestAgentsDirectoryFilter(t *testing.T) {
	api := &fakeAPI{
		users: func(context.Context) ([]models.RawRecord, error) {
			return []models.RawRecord{
				{"id": 1.0, "first_name": "Vanessa", "surname": "Wingstrand", "role_id": 2.0, "city": "Stockholm"},
				{"id": 2.0, "first_name": "Erik", "surname": "Lund", "role_id": 2.0, "city": "Arvika"},
				{"id": 3.0, "first_name": "Sam", "surname": "Buyer", "role_id": 1.0},
			}, nil
		},
	}
	norm := services.NewNormalizer(utils.NewLogger(false))
	v := NewAgentsView(api, norm, utils.NewLogger(false))
	v.Refresh(context.Background())

	snap := v.Snapshot()
	if len(snap.Agents) != 2 {
		t.Fatalf("only realtors should remain, got %d", len(snap.Agents))
	}

	v.SetFilter("  ARVIKA ")
	snap = v.Snapshot()
	if len(snap.Agents) != 1 || snap.Agents[0].Name != "Erik Lund" {
		t.Errorf("city filter: %v", snap.Agents)
	}

	v.SetFilter("nobody here")
	if got := v.Snapshot().Agents; len(got) != 0 {
		t.Errorf("non-matching filter should yield an empty list, got %d", len(got))
	}
}

func TestAgentsRefreshError(t *testing.T) {
	api := &fakeAPI{
		users: func(context.Context) ([]models.RawRecord, error) {
			return nil, fmt.Errorf("API 502: upstream down")
		},
	}
	norm := services.NewNormalizer(utils.NewLogger(false))
	v := NewAgentsView(api, norm, utils.NewLogger(false))
	v.Refresh(context.Background())

	snap := v.Snapshot()
	if snap.Status != StatusError || snap.Error == "" {
		t.Errorf("status = %v error = %q", snap.Status, snap.Error)
	}
}
