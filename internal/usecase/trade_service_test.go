package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-wrestling/internal/domain/ledger"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/trade"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/window"
	"github.com/riskibarqy/fantasy-wrestling/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-wrestling/internal/platform/id"
)

type tradeFixture struct {
	svc       *TradeService
	wrestlers *memory.WrestlerRepository
	ledger    *memory.LedgerRepository
}

func newTradeFixture(windows []window.Window) tradeFixture {
	wrestlerRepo := memory.NewWrestlerRepository(memory.SeedWrestlers())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	ledgerRepo := memory.NewLedgerRepository()
	tradeRepo := memory.NewTradeRepository(wrestlerRepo, ledgerRepo)

	svc := NewTradeService(tradeRepo, teamRepo, wrestlerRepo, newTestWindowService(windows), idgen.NewRandomGenerator())
	svc.now = func() time.Time { return tuesdayNoon }

	return tradeFixture{svc: svc, wrestlers: wrestlerRepo, ledger: ledgerRepo}
}

func (f tradeFixture) teamOf(t *testing.T, name string) string {
	t.Helper()
	item, exists, err := f.wrestlers.GetByName(t.Context(), name)
	if err != nil || !exists {
		t.Fatalf("wrestler %s: exists=%v err=%v", name, exists, err)
	}
	if item.TeamID == nil {
		return ""
	}
	return *item.TeamID
}

func proposeSeedTrade(t *testing.T, f tradeFixture) trade.Proposal {
	t.Helper()
	proposal, err := f.svc.Propose(t.Context(), ProposeTradeInput{
		OfferingTeam:  "The Heavyweights",
		ReceivingTeam: "Ring Generals",
		Offered:       []string{"Cody Rhodes"},
		Requested:     []string{"Becky Lynch"},
	})
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	return proposal
}

func TestTradeService_ProposeValidation(t *testing.T) {
	f := newTradeFixture(nil)

	_, err := f.svc.Propose(t.Context(), ProposeTradeInput{
		OfferingTeam:  "The Heavyweights",
		ReceivingTeam: "The Heavyweights",
		Offered:       []string{"Cody Rhodes"},
		Requested:     []string{"Becky Lynch"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for self trade, got %v", err)
	}

	_, err = f.svc.Propose(t.Context(), ProposeTradeInput{
		OfferingTeam:  "The Heavyweights",
		ReceivingTeam: "Ring Generals",
		Offered:       nil,
		Requested:     []string{"Becky Lynch"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty offer, got %v", err)
	}

	// Gunther is a free agent, not Heavyweights property.
	_, err = f.svc.Propose(t.Context(), ProposeTradeInput{
		OfferingTeam:  "The Heavyweights",
		ReceivingTeam: "Ring Generals",
		Offered:       []string{"Gunther"},
		Requested:     []string{"Becky Lynch"},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unowned offer, got %v", err)
	}
}

func TestTradeService_ProposeRestricted(t *testing.T) {
	windows := []window.Window{{ID: "w", Day: 2, StartHour: 11, EndHour: 13}}
	f := newTradeFixture(windows)

	_, err := f.svc.Propose(t.Context(), ProposeTradeInput{
		OfferingTeam:  "The Heavyweights",
		ReceivingTeam: "Ring Generals",
		Offered:       []string{"Cody Rhodes"},
		Requested:     []string{"Becky Lynch"},
	})
	if !errors.Is(err, window.ErrRestricted) {
		t.Fatalf("expected ErrRestricted, got %v", err)
	}
}

func TestTradeService_AcceptSwapsRosters(t *testing.T) {
	f := newTradeFixture(nil)
	proposal := proposeSeedTrade(t, f)

	responded, err := f.svc.Respond(t.Context(), proposal.ID, TradeActionAccept)
	if err != nil {
		t.Fatalf("respond accept: %v", err)
	}
	if responded.Status != trade.StatusAccepted {
		t.Fatalf("expected accepted status, got %s", responded.Status)
	}
	if responded.RespondedAt == nil {
		t.Fatal("expected responded_at to be set")
	}

	if got := f.teamOf(t, "Cody Rhodes"); got != memory.TeamIDRingGenerals {
		t.Fatalf("Cody Rhodes on %q, want receiving team", got)
	}
	if got := f.teamOf(t, "Becky Lynch"); got != memory.TeamIDHeavyweights {
		t.Fatalf("Becky Lynch on %q, want offering team", got)
	}

	rows, err := f.ledger.List(t.Context())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected a trade_out pair, got %d rows", len(rows))
	}
	for _, row := range rows {
		if row.Action != ledger.ActionTradeOut {
			t.Fatalf("expected trade_out, got %s", row.Action)
		}
	}
	// Each row is tagged to the team that gave the wrestler up.
	if rows[0].WrestlerName != "Cody Rhodes" || rows[0].TeamName != "The Heavyweights" {
		t.Fatalf("unexpected first audit row %+v", rows[0])
	}
	if rows[1].WrestlerName != "Becky Lynch" || rows[1].TeamName != "Ring Generals" {
		t.Fatalf("unexpected second audit row %+v", rows[1])
	}
}

func TestTradeService_RejectLeavesRostersUnchanged(t *testing.T) {
	f := newTradeFixture(nil)
	proposal := proposeSeedTrade(t, f)

	responded, err := f.svc.Respond(t.Context(), proposal.ID, TradeActionReject)
	if err != nil {
		t.Fatalf("respond reject: %v", err)
	}
	if responded.Status != trade.StatusRejected {
		t.Fatalf("expected rejected status, got %s", responded.Status)
	}

	if got := f.teamOf(t, "Cody Rhodes"); got != memory.TeamIDHeavyweights {
		t.Fatalf("Cody Rhodes moved to %q on reject", got)
	}
	if got := f.teamOf(t, "Becky Lynch"); got != memory.TeamIDRingGenerals {
		t.Fatalf("Becky Lynch moved to %q on reject", got)
	}

	rows, err := f.ledger.List(t.Context())
	if err != nil {
		t.Fatalf("list transactions: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("reject must not write transactions, got %d", len(rows))
	}
}

func TestTradeService_SecondRespondFails(t *testing.T) {
	f := newTradeFixture(nil)
	proposal := proposeSeedTrade(t, f)

	if _, err := f.svc.Respond(t.Context(), proposal.ID, TradeActionReject); err != nil {
		t.Fatalf("first respond: %v", err)
	}

	_, err := f.svc.Respond(t.Context(), proposal.ID, TradeActionAccept)
	if !errors.Is(err, trade.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestTradeService_RespondUnknownTrade(t *testing.T) {
	f := newTradeFixture(nil)

	_, err := f.svc.Respond(t.Context(), "missing", TradeActionAccept)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	proposal := proposeSeedTrade(t, f)
	_, err = f.svc.Respond(t.Context(), proposal.ID, "maybe")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown action, got %v", err)
	}
}

func TestTradeService_PendingInbox(t *testing.T) {
	f := newTradeFixture(nil)
	proposal := proposeSeedTrade(t, f)

	inbox, err := f.svc.PendingForTeam(t.Context(), "ring generals")
	if err != nil {
		t.Fatalf("pending inbox: %v", err)
	}
	if len(inbox) != 1 || inbox[0].ID != proposal.ID {
		t.Fatalf("unexpected inbox %+v", inbox)
	}

	inbox, err = f.svc.PendingForTeam(t.Context(), "The Heavyweights")
	if err != nil {
		t.Fatalf("pending inbox: %v", err)
	}
	if len(inbox) != 0 {
		t.Fatalf("offering team inbox must be empty, got %+v", inbox)
	}
}
