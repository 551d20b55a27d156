package resilience

import (
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ProviderHealth is a snapshot of a provider's transport health.
type ProviderHealth struct {
	// Name is the provider identifier.
	Name string

	// CircuitState is the current breaker state.
	CircuitState gobreaker.State

	// Counts contains breaker statistics.
	Counts gobreaker.Counts

	// LastSuccessAt is when the provider last answered successfully.
	LastSuccessAt *time.Time

	// LastFailureAt is when the provider last failed.
	LastFailureAt *time.Time

	// LastError is the most recent error message, if any.
	LastError string
}

// IsHealthy reports whether the provider circuit is closed.
func (h *ProviderHealth) IsHealthy() bool {
	return h.CircuitState == gobreaker.StateClosed
}

// Registry tracks the Digitransit provider clients and their health. The
// ops status endpoint reads it; clients write to it after each call.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]*registeredProvider
}

type registeredProvider struct {
	client        *Client
	lastSuccessAt *time.Time
	lastFailureAt *time.Time
	lastError     string
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*registeredProvider)}
}

// Register adds a provider client to the registry.
func (r *Registry) Register(name string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = &registeredProvider{client: client}
}

// RecordSuccess records a successful call for a provider.
func (r *Registry) RecordSuccess(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[name]; ok {
		now := time.Now()
		p.lastSuccessAt = &now
	}
}

// RecordFailure records a failed call for a provider.
func (r *Registry) RecordFailure(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.providers[name]; ok {
		now := time.Now()
		p.lastFailureAt = &now
		if err != nil {
			p.lastError = err.Error()
		}
	}
}

// GetHealth returns the health of one provider, or nil if unknown.
func (r *Registry) GetHealth(name string) *ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[name]
	if !ok {
		return nil
	}
	return &ProviderHealth{
		Name:          name,
		CircuitState:  p.client.State(),
		Counts:        p.client.Counts(),
		LastSuccessAt: p.lastSuccessAt,
		LastFailureAt: p.lastFailureAt,
		LastError:     p.lastError,
	}
}

// GetAllHealth returns the health of every registered provider.
func (r *Registry) GetAllHealth() []*ProviderHealth {
	r.mu.RLock()
	defer r.mu.RUnlock()

	health := make([]*ProviderHealth, 0, len(r.providers))
	for name, p := range r.providers {
		health = append(health, &ProviderHealth{
			Name:          name,
			CircuitState:  p.client.State(),
			Counts:        p.client.Counts(),
			LastSuccessAt: p.lastSuccessAt,
			LastFailureAt: p.lastFailureAt,
			LastError:     p.lastError,
		})
	}
	return health
}
