package domain

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to SessionStatus
		want     bool
	}{
		{SessionPending, SessionScheduled, true},
		{SessionPending, SessionCanceled, true},
		{SessionPending, SessionCompleted, false},
		{SessionScheduled, SessionCompleted, true},
		{SessionScheduled, SessionCanceled, true},
		{SessionScheduled, SessionPending, false},
		{SessionCompleted, SessionCanceled, false},
		{SessionCompleted, SessionScheduled, false},
		{SessionCanceled, SessionPending, false},
		{SessionCanceled, SessionScheduled, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

// Terminal states have no outgoing edges at all.
func TestTerminalStatesNeverTransition(t *testing.T) {
	all := []SessionStatus{SessionPending, SessionScheduled, SessionCompleted, SessionCanceled}
	for _, terminal := range []SessionStatus{SessionCompleted, SessionCanceled} {
		if !terminal.IsTerminal() {
			t.Errorf("IsTerminal(%s) = false, want true", terminal)
		}
		for _, next := range all {
			if terminal.CanTransition(next) {
				t.Errorf("CanTransition(%s -> %s) = true, want false", terminal, next)
			}
		}
	}
}

func TestRoleCanTransition(t *testing.T) {
	cases := []struct {
		name     string
		role     Role
		from, to SessionStatus
		want     bool
	}{
		{"client cancels pending", RoleClient, SessionPending, SessionCanceled, true},
		{"client cancels scheduled", RoleClient, SessionScheduled, SessionCanceled, true},
		{"client cannot approve", RoleClient, SessionPending, SessionScheduled, false},
		{"client cannot complete", RoleClient, SessionScheduled, SessionCompleted, false},
		{"trainer approves", RoleTrainer, SessionPending, SessionScheduled, true},
		{"trainer declines", RoleTrainer, SessionPending, SessionCanceled, true},
		{"trainer completes", RoleTrainer, SessionScheduled, SessionCompleted, true},
		{"trainer cannot revive canceled", RoleTrainer, SessionCanceled, SessionScheduled, false},
		{"manager approves", RoleManager, SessionPending, SessionScheduled, true},
		{"admin completes", RoleAdmin, SessionScheduled, SessionCompleted, true},
		{"unknown role denied", Role("ghost"), SessionPending, SessionCanceled, false},
	}
	for _, c := range cases {
		if got := RoleCanTransition(c.role, c.from, c.to); got != c.want {
			t.Errorf("%s: RoleCanTransition(%s, %s -> %s) = %v, want %v",
				c.name, c.role, c.from, c.to, got, c.want)
		}
	}
}

func TestValidMode(t *testing.T) {
	for _, m := range []SessionMode{ModeInPerson, ModeVirtual, ModeSelfGuided} {
		if !ValidMode(m) {
			t.Errorf("ValidMode(%s) = false, want true", m)
		}
	}
	if ValidMode(SessionMode("hybrid")) {
		t.Error("ValidMode(hybrid) = true, want false")
	}
}
