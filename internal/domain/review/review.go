package review

import (
	"errors"

	"skillport/internal/domain/selection"
)

var (
	ErrNotFound       = errors.New("review item not found")
	ErrNothingPending = errors.New("no pending items selected")
	ErrReasonRequired = errors.New("rejection reason required")
)

// Action is a reviewer decision.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func (a Action) Valid() bool { return a == ActionApprove || a == ActionReject }

// DefaultRejectReason backfills a bypassed confirmation step. The UI is
// expected to collect a real reason before enabling the action.
const DefaultRejectReason = "No reason provided"

// Item is one reviewable claim inside an employee's request group.
type Item struct {
	ItemID         string           `json:"skillId"`
	HashID         string           `json:"hashId"`
	Category       string           `json:"Category"`
	SubCategory    string           `json:"Sub-Category"`
	SubSubCategory string           `json:"Sub-Sub-Category"`
	Tools          string           `json:"Tools"`
	Level          selection.Level  `json:"Level"`
	Status         selection.Status `json:"status"`
	RejectReason   string           `json:"reason,omitempty"`
}

// PendingExpert reports whether the item still needs reviewer action.
func (it Item) PendingExpert() bool {
	return it.Status == selection.StatusPending && it.Level == selection.LevelExpert
}

// Group is one employee's bundle of reviewable items, created from a
// server fetch and mutated locally (optimistically) on review actions.
type Group struct {
	ID       string `json:"id"`
	Employee string `json:"employee"`
	Email    string `json:"email"`
	Items    []Item `json:"skills"`
}

// PendingExpertCount counts items still awaiting review.
func (g Group) PendingExpertCount() int {
	n := 0
	for _, it := range g.Items {
		if it.PendingExpert() {
			n++
		}
	}
	return n
}

// PendingExpertIDs lists the ids of items still awaiting review.
func (g Group) PendingExpertIDs() []string {
	var ids []string
	for _, it := range g.Items {
		if it.PendingExpert() {
			ids = append(ids, it.ItemID)
		}
	}
	return ids
}

// Apply flips the status of every listed item per the action, enforcing
// the Pending→{Approved,Rejected} guard. An approved claim keeps its
// expert level; a rejected one falls back to intermediate and carries the
// reason, matching the upstream review semantics.
func (g *Group) Apply(action Action, itemIDs []string, reason string) error {
	wanted := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	for i := range g.Items {
		it := &g.Items[i]
		if !wanted[it.ItemID] {
			continue
		}
		target := selection.StatusApproved
		if action == ActionReject {
			target = selection.StatusRejected
		}
		next, err := it.Status.Transition(target)
		if err != nil {
			return err
		}
		it.Status = next
		if action == ActionReject {
			it.Level = selection.LevelIntermediate
			it.RejectReason = reason
		} else {
			it.Level = selection.LevelExpert
			it.RejectReason = ""
		}
		delete(wanted, it.ItemID)
	}
	if len(wanted) > 0 {
		return ErrNotFound
	}
	return nil
}
