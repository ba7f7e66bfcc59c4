package types

import "testing"

func TestStatusValidity(t *testing.T) {
	for _, s := range []Status{StatusNotStarted, StatusInProgress, StatusCompleted, StatusVerified} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	if Status("done").Valid() {
		t.Fatalf("expected unknown status to be invalid")
	}
	if StatusInProgress.Answered() {
		t.Fatalf("in_progress must not require a value")
	}
	if !StatusCompleted.Answered() || !StatusVerified.Answered() {
		t.Fatalf("completed and verified must require a value")
	}
}

func TestClosedEnumerations(t *testing.T) {
	if Impact("Critical").Valid() {
		t.Fatalf("Critical is outside the impact enumeration")
	}
	if Effort("Trivial").Valid() {
		t.Fatalf("Trivial is outside the effort enumeration")
	}
	if ActionStatus("Blocked").Valid() {
		t.Fatalf("Blocked is outside the action status enumeration")
	}
	if !ActionStatus("In Progress").Valid() {
		t.Fatalf("In Progress must be valid (space included)")
	}
	if EvidenceType("Email").Valid() {
		t.Fatalf("Email is outside the evidence type enumeration")
	}
}

func TestSeedDataIntegrity(t *testing.T) {
	questions := SeedQuestions()
	evidence := SeedEvidence()

	known := make(map[string]bool, len(evidence))
	for _, e := range evidence {
		if known[e.ID] {
			t.Fatalf("duplicate evidence id %s", e.ID)
		}
		known[e.ID] = true
	}

	for _, q := range questions {
		if q.Status.Answered() && q.Value == "" {
			t.Fatalf("seed question %s violates the value invariant", q.ID)
		}
		for _, eid := range q.EvidenceIDs {
			if !known[eid] {
				t.Fatalf("seed question %s references unknown evidence %s", q.ID, eid)
			}
		}
	}
}

func TestProgressPercent(t *testing.T) {
	if (Progress{}).Percent() != 0 {
		t.Fatalf("empty progress must be 0%%")
	}
	p := Progress{Total: 5, Done: 3}
	if p.Percent() != 60 {
		t.Fatalf("expected 60%%, got %d", p.Percent())
	}
}
