package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"esgcopilot/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func strPtr(s string) *string                               { return &s }
func statusPtr(s types.Status) *types.Status                { return &s }
func impactPtr(i types.Impact) *types.Impact                { return &i }
func actStatusPtr(s types.ActionStatus) *types.ActionStatus { return &s }

func TestCompletionRejectedWithoutValue(t *testing.T) {
	s := New()

	q, ok := s.Question("E1")
	require.True(t, ok)
	require.Empty(t, q.Value)
	require.Equal(t, types.StatusNotStarted, q.Status)

	assert.False(t, s.ToggleQuestionComplete("E1"))

	q, _ = s.Question("E1")
	assert.Equal(t, types.StatusNotStarted, q.Status)
}

func TestValueAutoAdvancesThenToggleCompletes(t *testing.T) {
	s := New()

	require.True(t, s.UpsertQuestion("E1", QuestionUpdate{Value: strPtr("1500")}))
	q, _ := s.Question("E1")
	assert.Equal(t, types.StatusInProgress, q.Status)
	assert.Equal(t, "1500", q.Value)
	assert.NotEmpty(t, q.LastUpdated)

	require.True(t, s.ToggleQuestionComplete("E1"))
	q, _ = s.Question("E1")
	assert.Equal(t, types.StatusCompleted, q.Status)

	// Completion is a manual toggle: reverting keeps the value.
	require.True(t, s.ToggleQuestionComplete("E1"))
	q, _ = s.Question("E1")
	assert.Equal(t, types.StatusInProgress, q.Status)
	assert.Equal(t, "1500", q.Value)
}

func TestEmptyingValueRevertsStatus(t *testing.T) {
	s := New()

	q, _ := s.Question("E2")
	require.Equal(t, types.StatusInProgress, q.Status)

	require.True(t, s.UpsertQuestion("E2", QuestionUpdate{Value: strPtr("")}))
	q, _ = s.Question("E2")
	assert.Equal(t, types.StatusNotStarted, q.Status)
	assert.Empty(t, q.Value)
}

func TestExplicitCompletedWithEmptyValueIsNoOp(t *testing.T) {
	s := New()

	before, _ := s.Question("E1")
	assert.False(t, s.UpsertQuestion("E1", QuestionUpdate{Status: statusPtr(types.StatusCompleted)}))
	after, _ := s.Question("E1")

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("rejected upsert must not change the question (-before +after):\n%s", diff)
	}
}

func TestValueInvariantHoldsAfterEveryOperation(t *testing.T) {
	s := New()

	check := func() {
		t.Helper()
		for _, q := range s.Questions() {
			if q.Status.Answered() {
				require.NotEmptyf(t, q.Value, "question %s is %s with empty value", q.ID, q.Status)
			}
		}
	}

	check()
	s.UpsertQuestion("E1", QuestionUpdate{Value: strPtr("1500")})
	check()
	s.ToggleQuestionComplete("E1")
	check()
	s.UpsertQuestion("S1", QuestionUpdate{Value: strPtr("")})
	check()
	s.DeleteEvidence("ev-003")
	check()
}

func TestUpsertUnknownQuestionIsNoOp(t *testing.T) {
	s := New()
	assert.False(t, s.UpsertQuestion("Z9", QuestionUpdate{Value: strPtr("42")}))
}

func TestDeleteEvidenceCascades(t *testing.T) {
	s := New()

	q, _ := s.Question("E2")
	require.True(t, q.HasEvidence("ev-002"))

	s.DeleteEvidence("ev-002")

	for _, q := range s.Questions() {
		assert.Falsef(t, q.HasEvidence("ev-002"), "question %s still references deleted evidence", q.ID)
	}
	_, ok := s.EvidenceByID("ev-002")
	assert.False(t, ok)

	// The question survives the deletion of its evidence.
	_, ok = s.Question("E2")
	assert.True(t, ok)

	// Deleting again is a silent no-op.
	s.DeleteEvidence("ev-002")
}

func TestAddEvidencePrepends(t *testing.T) {
	s := New()

	require.True(t, s.AddEvidence(types.Evidence{
		ID:         "ev-new-1",
		Filename:   "May_Electricity.pdf",
		UploadDate: "2024-06-01",
		Type:       types.EvidenceOther,
	}))

	items := s.Evidence()
	require.NotEmpty(t, items)
	assert.Equal(t, "ev-new-1", items[0].ID)

	// Fresh id required.
	assert.False(t, s.AddEvidence(types.Evidence{ID: "ev-001", Filename: "dup.pdf"}))
}

func TestUpsertRejectsUnknownEvidenceReference(t *testing.T) {
	s := New()
	assert.False(t, s.UpsertQuestion("E1", QuestionUpdate{EvidenceIDs: []string{"ev-missing"}}))

	require.True(t, s.UpsertQuestion("E1", QuestionUpdate{EvidenceIDs: []string{"ev-001", "ev-001", "ev-003"}}))
	q, _ := s.Question("E1")
	assert.Equal(t, []string{"ev-001", "ev-003"}, q.EvidenceIDs, "evidence ids must stay a set")
}

func TestAttachExtraction(t *testing.T) {
	s := New()

	require.True(t, s.AttachExtraction("ev-001", map[string]string{"commitments": "anti-bribery, whistleblowing"}, 0.88))
	e, ok := s.EvidenceByID("ev-001")
	require.True(t, ok)
	assert.Equal(t, 0.88, e.ConfidenceScore)
	assert.Equal(t, "anti-bribery, whistleblowing", e.ExtractedData["commitments"])

	assert.False(t, s.AttachExtraction("ev-missing", nil, 0.5))
}

func TestActionCRUD(t *testing.T) {
	s := New()

	require.True(t, s.AddAction(types.ActionPlanItem{
		ID: "manual-1", Title: "Conduct energy audit",
		Impact: types.ImpactMedium, Effort: types.EffortMedium, Status: types.ActionPlanned,
	}))
	assert.False(t, s.AddAction(types.ActionPlanItem{
		ID: "a1", Title: "dup",
		Impact: types.ImpactLow, Effort: types.EffortEasy, Status: types.ActionPlanned,
	}))

	require.True(t, s.UpdateAction("manual-1", ActionUpdate{Status: actStatusPtr(types.ActionDone)}))
	assert.False(t, s.UpdateAction("ghost", ActionUpdate{Status: actStatusPtr(types.ActionDone)}), "unknown id is a no-op")

	bad := types.Impact("Critical")
	assert.False(t, s.UpdateAction("manual-1", ActionUpdate{Impact: &bad}))
	require.True(t, s.UpdateAction("manual-1", ActionUpdate{Impact: impactPtr(types.ImpactHigh)}))

	s.DeleteAction("manual-1")
	assert.False(t, s.HasActionID("manual-1"))
	s.DeleteAction("manual-1") // no-op
}

func TestAddActionRejectsInvalidEnums(t *testing.T) {
	s := New()
	before := len(s.Actions())

	for name, item := range map[string]types.ActionPlanItem{
		"impact": {ID: "manual-2", Title: "x", Impact: types.Impact("Critical"), Effort: types.EffortEasy, Status: types.ActionPlanned},
		"effort": {ID: "manual-3", Title: "x", Impact: types.ImpactLow, Effort: types.Effort("Impossible"), Status: types.ActionPlanned},
		"status": {ID: "manual-4", Title: "x", Impact: types.ImpactLow, Effort: types.EffortEasy, Status: types.ActionStatus("Someday")},
	} {
		assert.Falsef(t, s.AddAction(item), "out-of-enum %s must be rejected", name)
	}
	assert.Len(t, s.Actions(), before, "rejected adds must be no-ops")
}

func TestReplaceActionsMergeContract(t *testing.T) {
	s := New()
	existing := s.Actions()
	require.Len(t, existing, 3)

	generated := []types.ActionPlanItem{
		{ID: "ai-1", Title: "Measure water usage", Impact: types.ImpactMedium, Effort: types.EffortEasy, Status: types.ActionPlanned},
		{ID: "ai-2", Title: "Publish ESG policy", Impact: types.ImpactHigh, Effort: types.EffortMedium, Status: types.ActionPlanned},
	}
	s.ReplaceActions(append(existing, generated...))

	merged := s.Actions()
	require.Len(t, merged, 5)
	for i, a := range existing {
		assert.Equal(t, a.ID, merged[i].ID, "existing items keep their ids and order")
	}
}

func TestUpdateCompanyReflectsInProgress(t *testing.T) {
	s := New()

	p := s.Progress()
	require.Equal(t, 5, p.Total)
	require.Equal(t, 3, p.Done) // S1, S2, G1 in the seed

	updated := s.Company()
	updated.Name = "Another Co"
	updated.ReportingYear = 2025
	s.UpdateCompany(updated)

	assert.Equal(t, "Another Co", s.Company().Name)
	p = s.Progress()
	assert.Equal(t, 5, p.Total, "progress derives from live state after profile update")

	env := p.ByCategory[types.CategoryEnvironment]
	assert.Equal(t, 2, env.Total)
	assert.Equal(t, 0, env.Done)
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	s := New()

	calls := 0
	unsub := s.Subscribe(func() { calls++ })

	s.UpsertQuestion("E1", QuestionUpdate{Value: strPtr("9")})
	s.DeleteEvidence("ev-003")
	require.Equal(t, 2, calls)

	// Rejected mutations do not notify.
	s.ToggleQuestionComplete("nope")
	require.Equal(t, 2, calls)

	unsub()
	s.DeleteAction("a1")
	assert.Equal(t, 2, calls)
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New()

	qs := s.Questions()
	qs[0].Value = "tampered"
	qs[1].EvidenceIDs = append(qs[1].EvidenceIDs, "ev-bogus")

	fresh, _ := s.Question(qs[0].ID)
	assert.NotEqual(t, "tampered", fresh.Value)
	q2, _ := s.Question(qs[1].ID)
	assert.False(t, q2.HasEvidence("ev-bogus"))
}
