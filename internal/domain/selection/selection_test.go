package selection

import "testing"

func TestLevel_Valid(t *testing.T) {
	for _, l := range []Level{LevelBasic, LevelIntermediate, LevelExpert} {
		if !l.Valid() {
			t.Fatalf("%s should be valid", l)
		}
	}
	for _, l := range []Level{"", "L4", "expert"} {
		if l.Valid() {
			t.Fatalf("%q should be invalid", l)
		}
	}
}

func TestStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusPreApproved, StatusApproved, false},
		{StatusNone, StatusApproved, false},
	}
	for _, c := range cases {
		got, err := c.from.Transition(c.to)
		if c.ok {
			if err != nil {
				t.Fatalf("%s->%s: unexpected error %v", c.from, c.to, err)
			}
			if got != c.to {
				t.Fatalf("%s->%s: got %s", c.from, c.to, got)
			}
			continue
		}
		if err != ErrInvalidTransition {
			t.Fatalf("%s->%s: want ErrInvalidTransition, got %v", c.from, c.to, err)
		}
		if got != c.from {
			t.Fatalf("%s->%s: failed transition must not change status, got %s", c.from, c.to, got)
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusApproved, StatusRejected, StatusPreApproved} {
		if !s.Terminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	if StatusPending.Terminal() || StatusNone.Terminal() {
		t.Fatal("pending/none must not be terminal")
	}
}
