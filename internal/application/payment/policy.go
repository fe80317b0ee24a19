package payment

import (
	"math/rand"
	"sync"
	"time"
)

// SettlementPolicy decides how long settlement takes and whether it
// succeeds. It stands in for a real gateway integration; the seedable source
// lets tests force deterministic outcomes.
type SettlementPolicy struct {
	Delay       time.Duration
	SuccessRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSettlementPolicy(delay time.Duration, successRate float64, seed int64) *SettlementPolicy {
	return &SettlementPolicy{
		Delay:       delay,
		SuccessRate: successRate,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Authorize draws one settlement outcome.
func (p *SettlementPolicy) Authorize() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Float64() < p.SuccessRate
}
