// Package store owns the mutable entity graph for one assessment session:
// the company profile, the question set, the evidence library, and the
// action board. It is the single source of truth; every mutation goes
// through its operations, which are the sole points of invariant
// enforcement. State lives only for the lifetime of the process.
package store

import (
	"sync"
	"time"

	"esgcopilot/internal/logging"
	"esgcopilot/internal/types"
)

// Store holds all entity collections behind one lock. Operations are atomic:
// observers are notified only after a mutation has fully applied.
type Store struct {
	mu        sync.RWMutex
	company   types.CompanyProfile
	questions []types.Question
	evidence  []types.Evidence
	actions   []types.ActionPlanItem

	subMu       sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

// New creates a store pre-loaded with the seed dataset.
func New() *Store {
	return NewWith(types.SeedCompany(), types.SeedQuestions(), types.SeedEvidence(), types.SeedActions())
}

// NewWith creates a store with explicit initial state.
func NewWith(company types.CompanyProfile, questions []types.Question, evidence []types.Evidence, actions []types.ActionPlanItem) *Store {
	return &Store{
		company:     company,
		questions:   questions,
		evidence:    evidence,
		actions:     actions,
		subscribers: map[int]func(){},
	}
}

// Subscribe registers fn to run after every successful mutation and returns
// an unsubscribe function. fn is called outside the store lock.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// =============================================================================
// READS
// =============================================================================

// Company returns the current profile.
func (s *Store) Company() types.CompanyProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.company
}

// Questions returns a copy of the question collection in display order.
func (s *Store) Questions() []types.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyQuestions(s.questions)
}

// Question returns a single question by id.
func (s *Store) Question(id string) (types.Question, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.questions {
		if q.ID == id {
			return copyQuestion(q), true
		}
	}
	return types.Question{}, false
}

// Evidence returns a copy of the document library, most recent first.
func (s *Store) Evidence() []types.Evidence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Evidence, len(s.evidence))
	copy(out, s.evidence)
	return out
}

// EvidenceByID returns a single document by id.
func (s *Store) EvidenceByID(id string) (types.Evidence, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.evidence {
		if e.ID == id {
			return e, true
		}
	}
	return types.Evidence{}, false
}

// Actions returns a copy of the action board.
func (s *Store) Actions() []types.ActionPlanItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ActionPlanItem, len(s.actions))
	copy(out, s.actions)
	return out
}

// Progress derives completion counts from the live question set. Reads are
// never cached, so the result always reflects the latest mutations.
func (s *Store) Progress() types.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := types.Progress{ByCategory: map[types.Category]types.CategoryProgress{}}
	for _, q := range s.questions {
		cp := p.ByCategory[q.Category]
		cp.Total++
		p.Total++
		if q.Status.Answered() {
			cp.Done++
			p.Done++
		}
		p.ByCategory[q.Category] = cp
	}
	return p
}

// =============================================================================
// MUTATIONS
// =============================================================================

// UpdateCompany replaces the profile wholesale.
func (s *Store) UpdateCompany(profile types.CompanyProfile) {
	s.mu.Lock()
	s.company = profile
	s.mu.Unlock()

	logging.Store("company updated name=%q year=%d", profile.Name, profile.ReportingYear)
	s.notify()
}

// QuestionUpdate is a partial update for UpsertQuestion. Nil fields are left
// untouched.
type QuestionUpdate struct {
	Value        *string
	Status       *types.Status
	EvidenceIDs  []string
	AISuggestion *string
}

// UpsertQuestion applies a partial update to an existing question and
// reports whether it was accepted. Unknown ids and invariant violations are
// rejected as no-ops.
//
// Status transitions: when Value goes from empty to non-empty without an
// explicit Status, the question auto-advances to in_progress; when Value
// goes empty the question reverts to not_started. An explicit
// status=completed is rejected while the (post-update) value is empty.
func (s *Store) UpsertQuestion(id string, upd QuestionUpdate) bool {
	s.mu.Lock()

	idx := -1
	for i, q := range s.questions {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		logging.StoreWarn("upsert rejected: unknown question %s", id)
		return false
	}

	q := s.questions[idx]
	newValue := q.Value
	if upd.Value != nil {
		newValue = *upd.Value
	}

	if upd.Status != nil {
		if !upd.Status.Valid() {
			s.mu.Unlock()
			logging.StoreWarn("upsert rejected: invalid status %q for %s", *upd.Status, id)
			return false
		}
		if upd.Status.Answered() && newValue == "" {
			s.mu.Unlock()
			logging.StoreWarn("upsert rejected: %s cannot be %s without a value", id, *upd.Status)
			return false
		}
	}

	if upd.EvidenceIDs != nil {
		for _, eid := range upd.EvidenceIDs {
			if !s.evidenceExistsLocked(eid) {
				s.mu.Unlock()
				logging.StoreWarn("upsert rejected: %s references unknown evidence %s", id, eid)
				return false
			}
		}
		q.EvidenceIDs = dedupe(upd.EvidenceIDs)
	}

	if upd.Value != nil {
		valueWasEmpty := q.Value == ""
		q.Value = newValue
		if upd.Status == nil && valueWasEmpty && newValue != "" {
			q.Status = types.StatusInProgress
		}
	}
	if upd.Status != nil {
		q.Status = *upd.Status
	}
	// Emptying the value always reverts the workflow, even when the caller
	// set a status in the same update.
	if upd.Value != nil && newValue == "" {
		q.Status = types.StatusNotStarted
	}
	if upd.AISuggestion != nil {
		q.AISuggestion = *upd.AISuggestion
	}
	q.LastUpdated = time.Now().Format("2006-01-02")

	s.questions[idx] = q
	s.mu.Unlock()

	logging.Store("question %s updated status=%s", id, q.Status)
	s.notify()
	return true
}

// ToggleQuestionComplete flips the manual completion toggle. Completion is a
// user decision, not derived: an already completed question reverts to
// in_progress (even though it still has a value), an answered question
// advances to completed, and an unanswered one is rejected.
func (s *Store) ToggleQuestionComplete(id string) bool {
	s.mu.Lock()

	idx := -1
	for i, q := range s.questions {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	q := s.questions[idx]
	switch {
	case q.Status == types.StatusCompleted:
		q.Status = types.StatusInProgress
	case q.Value != "":
		q.Status = types.StatusCompleted
	default:
		s.mu.Unlock()
		logging.StoreWarn("completion rejected: %s has no value", id)
		return false
	}
	q.LastUpdated = time.Now().Format("2006-01-02")
	s.questions[idx] = q
	s.mu.Unlock()

	logging.Store("question %s toggled to %s", id, q.Status)
	s.notify()
	return true
}

// AddEvidence prepends a document so the library stays most-recent-first.
// A duplicate id is rejected.
func (s *Store) AddEvidence(item types.Evidence) bool {
	s.mu.Lock()
	if s.evidenceExistsLocked(item.ID) {
		s.mu.Unlock()
		logging.StoreWarn("evidence add rejected: duplicate id %s", item.ID)
		return false
	}
	s.evidence = append([]types.Evidence{item}, s.evidence...)
	s.mu.Unlock()

	logging.Store("evidence %s added file=%q", item.ID, item.Filename)
	s.notify()
	return true
}

// DeleteEvidence removes a document and cascades the removal of its id from
// every question's EvidenceIDs. Questions themselves are never deleted.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteEvidence(id string) {
	s.mu.Lock()

	found := false
	kept := s.evidence[:0]
	for _, e := range s.evidence {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.evidence = kept
	if !found {
		s.mu.Unlock()
		return
	}

	for i, q := range s.questions {
		if !q.HasEvidence(id) {
			continue
		}
		ids := make([]string, 0, len(q.EvidenceIDs)-1)
		for _, eid := range q.EvidenceIDs {
			if eid != id {
				ids = append(ids, eid)
			}
		}
		s.questions[i].EvidenceIDs = ids
	}
	s.mu.Unlock()

	logging.Store("evidence %s deleted (references cascaded)", id)
	s.notify()
}

// AttachExtraction writes a simulated extraction result back onto a
// document. Unknown ids are a no-op.
func (s *Store) AttachExtraction(id string, facts map[string]string, confidence float64) bool {
	s.mu.Lock()
	idx := -1
	for i, e := range s.evidence {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}
	s.evidence[idx].ExtractedData = facts
	s.evidence[idx].ConfidenceScore = confidence
	s.mu.Unlock()

	logging.Store("evidence %s extraction attached confidence=%.2f", id, confidence)
	s.notify()
	return true
}

// AddAction appends a task to the board. A duplicate id or a value outside
// the closed impact/effort/status enumerations is rejected.
func (s *Store) AddAction(item types.ActionPlanItem) bool {
	if !item.Impact.Valid() || !item.Effort.Valid() || !item.Status.Valid() {
		logging.StoreWarn("action add rejected: invalid enum impact=%q effort=%q status=%q",
			item.Impact, item.Effort, item.Status)
		return false
	}

	s.mu.Lock()
	for _, a := range s.actions {
		if a.ID == item.ID {
			s.mu.Unlock()
			logging.StoreWarn("action add rejected: duplicate id %s", item.ID)
			return false
		}
	}
	s.actions = append(s.actions, item)
	s.mu.Unlock()

	logging.Store("action %s added title=%q", item.ID, item.Title)
	s.notify()
	return true
}

// ActionUpdate is a partial update for UpdateAction.
type ActionUpdate struct {
	Title  *string
	Impact *types.Impact
	Effort *types.Effort
	Status *types.ActionStatus
}

// UpdateAction applies a partial update. Unknown ids and values outside the
// closed enumerations are no-ops.
func (s *Store) UpdateAction(id string, upd ActionUpdate) bool {
	s.mu.Lock()
	idx := -1
	for i, a := range s.actions {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		s.mu.Unlock()
		return false
	}

	a := s.actions[idx]
	if upd.Impact != nil && !upd.Impact.Valid() {
		s.mu.Unlock()
		return false
	}
	if upd.Effort != nil && !upd.Effort.Valid() {
		s.mu.Unlock()
		return false
	}
	if upd.Status != nil && !upd.Status.Valid() {
		s.mu.Unlock()
		return false
	}
	if upd.Title != nil {
		a.Title = *upd.Title
	}
	if upd.Impact != nil {
		a.Impact = *upd.Impact
	}
	if upd.Effort != nil {
		a.Effort = *upd.Effort
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	s.actions[idx] = a
	s.mu.Unlock()

	logging.Store("action %s updated", id)
	s.notify()
	return true
}

// DeleteAction removes a task; unknown ids are a no-op.
func (s *Store) DeleteAction(id string) {
	s.mu.Lock()
	kept := s.actions[:0]
	removed := false
	for _, a := range s.actions {
		if a.ID == id {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	s.actions = kept
	s.mu.Unlock()

	if removed {
		logging.Store("action %s deleted", id)
		s.notify()
	}
}

// ReplaceActions installs a new board wholesale. The caller owns the merge:
// after AI generation the expected input is existing ++ generated. The store
// does not de-duplicate; a duplicate id here is a caller bug and is logged
// rather than silently repaired.
func (s *Store) ReplaceActions(items []types.ActionPlanItem) {
	seen := make(map[string]bool, len(items))
	for _, a := range items {
		if seen[a.ID] {
			logging.StoreWarn("ReplaceActions received duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}

	s.mu.Lock()
	s.actions = make([]types.ActionPlanItem, len(items))
	copy(s.actions, items)
	s.mu.Unlock()

	logging.Store("action board replaced items=%d", len(items))
	s.notify()
}

// HasActionID reports whether an id is already on the board.
func (s *Store) HasActionID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.actions {
		if a.ID == id {
			return true
		}
	}
	return false
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *Store) evidenceExistsLocked(id string) bool {
	for _, e := range s.evidence {
		if e.ID == id {
			return true
		}
	}
	return false
}

func copyQuestion(q types.Question) types.Question {
	ids := make([]string, len(q.EvidenceIDs))
	copy(ids, q.EvidenceIDs)
	q.EvidenceIDs = ids
	return q
}

func copyQuestions(qs []types.Question) []types.Question {
	out := make([]types.Question, len(qs))
	for i, q := range qs {
		out[i] = copyQuestion(q)
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
