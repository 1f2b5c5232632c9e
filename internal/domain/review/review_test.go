package review

import (
	"errors"
	"testing"

	"skillport/internal/domain/selection"
)

func pendingGroup() Group {
	return Group{
		ID:       "g1",
		Employee: "Jane Doe",
		Email:    "jane.doe@corp.example",
		Items: []Item{
			{ItemID: "i1", Level: selection.LevelExpert, Status: selection.StatusPending},
			{ItemID: "i2", Level: selection.LevelExpert, Status: selection.StatusPending},
			{ItemID: "i3", Level: selection.LevelExpert, Status: selection.StatusApproved},
			{ItemID: "i4", Level: selection.LevelIntermediate, Status: selection.StatusNone},
		},
	}
}

func TestPendingExpertCountAndIDs(t *testing.T) {
	g := pendingGroup()
	if n := g.PendingExpertCount(); n != 2 {
		t.Fatalf("pending count: got %d want 2", n)
	}
	ids := g.PendingExpertIDs()
	if len(ids) != 2 || ids[0] != "i1" || ids[1] != "i2" {
		t.Fatalf("pending ids: got %v", ids)
	}
}

func TestApply_ApproveKeepsExpertLevel(t *testing.T) {
	g := pendingGroup()
	if err := g.Apply(ActionApprove, []string{"i1"}, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	it := g.Items[0]
	if it.Status != selection.StatusApproved || it.Level != selection.LevelExpert {
		t.Fatalf("approved item wrong: %+v", it)
	}
	// untouched item stays pending
	if g.Items[1].Status != selection.StatusPending {
		t.Fatalf("unlisted item mutated: %+v", g.Items[1])
	}
}

func TestApply_RejectDropsToIntermediateWithReason(t *testing.T) {
	g := pendingGroup()
	if err := g.Apply(ActionReject, []string{"i2"}, "insufficient evidence"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	it := g.Items[1]
	if it.Status != selection.StatusRejected {
		t.Fatalf("status: got %s", it.Status)
	}
	if it.Level != selection.LevelIntermediate {
		t.Fatalf("rejected level must fall back to L2, got %s", it.Level)
	}
	if it.RejectReason != "insufficient evidence" {
		t.Fatalf("reason: got %q", it.RejectReason)
	}
}

func TestApply_TerminalItemFailsTransitionGuard(t *testing.T) {
	g := pendingGroup()
	err := g.Apply(ActionApprove, []string{"i3"}, "")
	if !errors.Is(err, selection.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestApply_UnknownIDIsNotFound(t *testing.T) {
	g := pendingGroup()
	if err := g.Apply(ActionApprove, []string{"nope"}, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
