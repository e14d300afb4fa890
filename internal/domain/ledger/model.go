package ledger

import (
	"fmt"
	"time"
)

// Action is the kind of roster movement a Transaction records.
type Action string

// Trades record one trade_out row per wrestler, tagged with the team that
// gave the wrestler up. No mirrored trade_in row exists.
const (
	ActionAdd      Action = "add"
	ActionDrop     Action = "drop"
	ActionTradeOut Action = "trade_out"
	ActionScore    Action = "score"
)

var AllActions = map[Action]struct{}{
	ActionAdd:      {},
	ActionDrop:     {},
	ActionTradeOut: {},
	ActionScore:    {},
}

// Transaction is an immutable audit record of one roster movement or scoring
// credit. Rows are append-only; nothing updates or deletes them.
type Transaction struct {
	ID           string
	WrestlerName string
	TeamName     string
	Action       Action
	Timestamp    time.Time
}

func (t Transaction) Validate() error {
	if t.WrestlerName == "" {
		return fmt.Errorf("transaction wrestler name is required")
	}
	if t.TeamName == "" {
		return fmt.Errorf("transaction team name is required")
	}
	if _, ok := AllActions[t.Action]; !ok {
		return fmt.Errorf("unknown transaction action %q", t.Action)
	}
	if t.Timestamp.IsZero() {
		return fmt.Errorf("transaction timestamp is required")
	}

	return nil
}
