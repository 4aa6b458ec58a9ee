package views

import (
	"context"
	"strings"
	"sync"

	"moonhem/gateway"
	"moonhem/models"
	"moonhem/services"
	"moonhem/utils"
)

// AgentsView owns the agent directory state: the fetched realtor set
// and a local name/agency/city filter applied without refetching.
type AgentsView struct {
	api    gateway.API
	norm   *services.Normalizer
	logger *utils.Logger

	mu     sync.Mutex
	gen    uint64
	closed bool
	agents []*models.Agent
	filter string
	status Status
	errMsg string
}

// AgentsSnapshot is a consistent read of the directory for rendering.
type AgentsSnapshot struct {
	Agents []*models.Agent
	Filter string
	Status Status
	Error  string
}

// NewAgentsView creates an empty agent directory view.
func NewAgentsView(api gateway.API, norm *services.Normalizer, logger *utils.Logger) *AgentsView {
	return &AgentsView{api: api, norm: norm, logger: logger, status: StatusIdle}
}

// SetFilter updates the local directory filter; no network involved.
func (v *AgentsView) SetFilter(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.filter = q
}

// Refresh fetches /users and keeps the realtor subset, falling back to
// the full set when the role heuristic matches nobody. Stale responses
// are discarded.
func (v *AgentsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	gen := v.gen
	v.status = StatusLoading
	v.errMsg = ""
	v.mu.Unlock()

	raw, err := v.api.Users(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || v.gen != gen {
		v.logger.Debug("[views] stale agents response discarded")
		return
	}
	if err != nil {
		v.status = StatusError
		v.errMsg = err.Error()
		v.agents = nil
		return
	}
	v.agents = services.FilterRealtors(v.norm.Agents(raw))
	v.status = StatusIdle
}

// Snapshot applies the local filter and returns the directory state.
func (v *AgentsView) Snapshot() AgentsSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(v.filter))
	list := v.agents
	if q != "" {
		list = make([]*models.Agent, 0, len(v.agents))
		for _, a := range v.agents {
			if strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.Agency), q) ||
				strings.Contains(strings.ToLower(a.City), q) {
				list = append(list, a)
			}
		}
	}

	return AgentsSnapshot{Agents: list, Filter: v.filter, Status: v.status, Error: v.errMsg}
}

// Close tears the view down; responses arriving afterwards are dropped.
func (v *AgentsView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}
