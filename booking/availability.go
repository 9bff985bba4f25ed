package booking

import (
	"fmt"
	"os"

	"github.com/JAILSONRCOACH/cadastro-plenitur-flat/models"
)

// Policy holds the tunable availability rules.
//
// PendingBlocks controls whether pending reservations (soft holds) block
// new bookings. The default is false: a pending hold carries no blocking
// guarantee and every caller re-confirms availability at commit time.
// Cancelled and completed reservations never block.
type Policy struct {
	PendingBlocks bool
}

// PolicyFromEnv reads the policy flags from the environment
// (AVAIL_PENDING_BLOCKS=true flips the soft-hold rule).
func PolicyFromEnv() Policy {
	return Policy{PendingBlocks: os.Getenv("AVAIL_PENDING_BLOCKS") == "true"}
}

// Engine answers availability questions and projects occupancy for the
// single rentable unit. It performs no writes.
type Engine struct {
	store  Store
	policy Policy
}

func NewEngine(store Store, policy Policy) *Engine {
	return &Engine{store: store, policy: policy}
}

// IsAvailable reports whether the candidate interval can be booked against
// the existing reservations. excludeID skips one reservation, used when
// re-checking while rescheduling; pass 0 for new bookings.
//
// This is a user-facing pre-check. The authoritative guard is the
// storage-level exclusion constraint; a concurrent committer that slips
// past this check is rejected by the store and surfaces as
// ErrSlotUnavailable.
func (e *Engine) IsAvailable(candidate Interval, excludeID uint) (bool, error) {
	existing, err := e.store.ReservationsOverlapping(candidate.CheckIn, candidate.CheckOut)
	if err != nil {
		// A check that cannot read data must refuse to answer "available".
		return false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	for _, res := range existing {
		if res.ID == excludeID {
			continue
		}
		if !e.blocks(res.Status) {
			continue
		}
		taken := Interval{CheckIn: toDay(res.CheckIn), CheckOut: toDay(res.CheckOut)}
		if candidate.Overlaps(taken) {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) blocks(status string) bool {
	switch status {
	case models.StatusConfirmed:
		return true
	case models.StatusPending:
		return e.policy.PendingBlocks
	default:
		return false
	}
}
