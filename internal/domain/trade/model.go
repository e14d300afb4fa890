package trade

import (
	"errors"
	"fmt"
	"time"
)

var ErrNotPending = errors.New("trade proposal is not pending")

// Status is the lifecycle state of a proposal. A proposal transitions
// exactly once: pending to accepted, or pending to rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Proposal is a two-sided multi-wrestler trade offer between teams.
type Proposal struct {
	ID            string
	OfferingTeam  string
	ReceivingTeam string
	Offered       []string
	Requested     []string
	Status        Status
	CreatedAt     time.Time
	RespondedAt   *time.Time
}

func (p Proposal) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("trade proposal id is required")
	}
	if p.OfferingTeam == "" {
		return fmt.Errorf("offering team is required")
	}
	if p.ReceivingTeam == "" {
		return fmt.Errorf("receiving team is required")
	}
	if p.OfferingTeam == p.ReceivingTeam {
		return fmt.Errorf("a team cannot trade with itself")
	}
	if len(p.Offered) == 0 {
		return fmt.Errorf("offered wrestlers are required")
	}
	if len(p.Requested) == 0 {
		return fmt.Errorf("requested wrestlers are required")
	}

	return nil
}

// IsPending reports whether the proposal can still be responded to.
func (p Proposal) IsPending() bool {
	return p.Status == StatusPending
}
