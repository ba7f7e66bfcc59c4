package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esgcopilot/internal/types"
)

func TestWelcomeIsFirst(t *testing.T) {
	l := New()

	msgs := l.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "welcome", msgs[0].ID)
	assert.Equal(t, types.RoleModel, msgs[0].Role)
	assert.Equal(t, WelcomeText, msgs[0].Text)
}

func TestAppendOrderAndFreshIDs(t *testing.T) {
	l := New()

	u := l.AppendUserMessage("How do I calculate Scope 1?")
	m := l.AppendModelMessage("Activity Data x Emission Factor.")

	msgs := l.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, u.ID, msgs[1].ID)
	assert.Equal(t, m.ID, msgs[2].ID)
	assert.NotEqual(t, u.ID, m.ID)
	assert.Equal(t, types.RoleUser, msgs[1].Role)
	assert.Equal(t, types.RoleModel, msgs[2].Role)
}

func TestContextualHintIdempotent(t *testing.T) {
	l := New()
	q := types.Question{ID: "E1", Topic: "Energy", Text: "Total Electricity Consumption"}

	assert.True(t, l.EnsureContextualHint(q))
	assert.False(t, l.EnsureContextualHint(q), "refocusing must not add a second hint")

	hints := 0
	for _, m := range l.Messages() {
		if m.ID == HintID("E1") {
			hints++
		}
	}
	assert.Equal(t, 1, hints)

	// A different question gets its own hint.
	assert.True(t, l.EnsureContextualHint(types.Question{ID: "S1", Topic: "Workforce", Text: "Total Number of Employees"}))
}

func TestHintMentionsTopicAndText(t *testing.T) {
	l := New()
	require.True(t, l.EnsureContextualHint(types.Question{ID: "G1", Topic: "Ethics", Text: "Code of Conduct"}))

	msgs := l.Messages()
	hint := msgs[len(msgs)-1]
	assert.Contains(t, hint.Text, "**Ethics**")
	assert.Contains(t, hint.Text, "*Code of Conduct*")
	assert.Equal(t, types.RoleModel, hint.Role)
}

func TestTimestampsUseClock(t *testing.T) {
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	l := newLog(func() time.Time { return fixed })

	msg := l.AppendUserMessage("hello")
	assert.Equal(t, fixed, msg.Timestamp)
}

func TestMessagesReturnsCopy(t *testing.T) {
	l := New()
	msgs := l.Messages()
	msgs[0].Text = "tampered"
	assert.Equal(t, WelcomeText, l.Messages()[0].Text)
}
