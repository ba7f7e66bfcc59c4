package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"esgcopilot/internal/copilot"
	"esgcopilot/internal/store"
	"esgcopilot/internal/types"
)

var (
	assessCategory     string
	assessStatus       string
	suggestAll         bool
	suggestConcurrency int
)

// assessCmd groups the question workflow commands
var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Work through the VSME assessment questions",
}

var assessListCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessment questions with answers and status",
	RunE:  assessList,
}

var assessShowCmd = &cobra.Command{
	Use:   "show [question-id]",
	Short: "Show one question in full, including evidence links",
	Args:  cobra.ExactArgs(1),
	RunE:  assessShow,
}

var assessSetCmd = &cobra.Command{
	Use:   "set [question-id] [value]",
	Short: "Record an answer for a question",
	Long: `Records the answer text for a question. Setting a first value moves the
question to in_progress; clearing the value (empty string) reverts it to
not_started. Completion is a separate explicit step, see "assess complete".`,
	Args: cobra.ExactArgs(2),
	RunE: assessSet,
}

var assessCompleteCmd = &cobra.Command{
	Use:   "complete [question-id]",
	Short: "Toggle a question between completed and in progress",
	Long: `Marks an answered question as completed, or re-opens a completed one.
A question with no recorded value cannot be completed.`,
	Args: cobra.ExactArgs(1),
	RunE: assessComplete,
}

var assessSuggestCmd = &cobra.Command{
	Use:   "suggest [question-id]",
	Short: "Ask the copilot to suggest an answer value",
	Long: `Requests an AI-estimated value for a question based on the company
profile. The suggestion is stored alongside the question; it never overwrites
a recorded answer. With --all, suggestions are fetched concurrently for every
question that has no answer yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: assessSuggest,
}

func init() {
	assessListCmd.Flags().StringVar(&assessCategory, "category", "", "Filter by pillar (Environment, Social, Governance)")
	assessListCmd.Flags().StringVar(&assessStatus, "status", "", "Filter by status (not_started, in_progress, completed, verified)")

	assessSuggestCmd.Flags().BoolVar(&suggestAll, "all", false, "Suggest values for every unanswered question")
	assessSuggestCmd.Flags().IntVar(&suggestConcurrency, "concurrency", 3, "Max concurrent suggestion requests with --all")

	assessCmd.AddCommand(assessListCmd)
	assessCmd.AddCommand(assessShowCmd)
	assessCmd.AddCommand(assessSetCmd)
	assessCmd.AddCommand(assessCompleteCmd)
	assessCmd.AddCommand(assessSuggestCmd)
}

func assessList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	if assessCategory != "" && !types.Category(assessCategory).Valid() {
		return fmt.Errorf("unknown category %q", assessCategory)
	}
	if assessStatus != "" && !types.Status(assessStatus).Valid() {
		return fmt.Errorf("unknown status %q", assessStatus)
	}

	s := currentStyles()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTOPIC\tQUESTION\tVALUE\tSTATUS")
	for _, q := range a.store.Questions() {
		if assessCategory != "" && q.Category != types.Category(assessCategory) {
			continue
		}
		if assessStatus != "" && q.Status != types.Status(assessStatus) {
			continue
		}
		value := q.Value
		if value != "" && q.Unit != "" {
			value = fmt.Sprintf("%s %s", value, q.Unit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			q.ID, q.Category, q.Topic, truncate(q.Text, 48), value, s.StatusBadge(q.Status))
	}
	return w.Flush()
}

func assessShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	q, ok := a.store.Question(args[0])
	if !ok {
		return fmt.Errorf("unknown question %q", args[0])
	}

	s := currentStyles()
	fmt.Println(s.Title.Render(fmt.Sprintf("%s — %s", q.ID, q.Text)))
	fmt.Printf("  Category:   %s / %s\n", q.Category, q.Topic)
	fmt.Printf("  Status:     %s\n", s.StatusBadge(q.Status))
	if q.Description != "" {
		fmt.Printf("  About:      %s\n", q.Description)
	}
	if q.Value != "" {
		unit := ""
		if q.Unit != "" {
			unit = " " + q.Unit
		}
		fmt.Printf("  Answer:     %s%s\n", q.Value, unit)
	}
	if q.AISuggestion != "" {
		fmt.Printf("  Suggested:  %s\n", s.Info.Render(q.AISuggestion))
	}
	if q.LastUpdated != "" {
		fmt.Printf("  Updated:    %s\n", q.LastUpdated)
	}
	if len(q.EvidenceIDs) > 0 {
		fmt.Println("  Evidence:")
		for _, eid := range q.EvidenceIDs {
			if ev, ok := a.store.EvidenceByID(eid); ok {
				fmt.Printf("    - %s (%s, %s)\n", ev.Filename, ev.Type, eid)
			}
		}
	}
	return nil
}

func assessSet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id, value := args[0], args[1]
	if !a.store.UpsertQuestion(id, store.QuestionUpdate{Value: &value}) {
		return fmt.Errorf("could not update question %q", id)
	}

	q, _ := a.store.Question(id)
	s := currentStyles()
	if value == "" {
		fmt.Printf("Cleared answer for %s (%s)\n", id, s.StatusBadge(q.Status))
		return nil
	}
	fmt.Printf("Recorded %q for %s (%s)\n", value, id, s.StatusBadge(q.Status))
	return nil
}

func assessComplete(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	q, ok := a.store.Question(id)
	if !ok {
		return fmt.Errorf("unknown question %q", id)
	}
	if !a.store.ToggleQuestionComplete(id) {
		return fmt.Errorf("question %q has no recorded value; answer it first", id)
	}

	q, _ = a.store.Question(id)
	fmt.Printf("%s is now %s\n", id, currentStyles().StatusBadge(q.Status))
	return nil
}

func assessSuggest(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	if suggestAll {
		return suggestAllQuestions(cmd, a)
	}
	if len(args) != 1 {
		return fmt.Errorf("provide a question id or --all")
	}

	q, ok := a.store.Question(args[0])
	if !ok {
		return fmt.Errorf("unknown question %q", args[0])
	}

	suggestion := a.copilot.SuggestValue(cmd.Context(), q, a.store.Company())
	if suggestion == "" {
		return fmt.Errorf("no suggestion available for %s right now", q.ID)
	}
	a.store.UpsertQuestion(q.ID, store.QuestionUpdate{AISuggestion: &suggestion})

	fmt.Printf("%s: %s\n", q.ID, currentStyles().Info.Render(suggestion))
	return nil
}

// suggestAllQuestions fans suggestion requests out over the unanswered
// questions, bounded by --concurrency. Each question carries an in-flight
// marker while its request is outstanding, so a duplicate suggestion for the
// same question is skipped rather than issued twice. Results are written
// back to the store as they arrive; failed questions are reported but do not
// abort the rest.
func suggestAllQuestions(cmd *cobra.Command, a *app) error {
	pending := make([]types.Question, 0)
	for _, q := range a.store.Questions() {
		if q.Value == "" {
			pending = append(pending, q)
		}
	}
	if len(pending) == 0 {
		fmt.Println("Every question already has an answer.")
		return nil
	}

	profile := a.store.Company()
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(suggestConcurrency)

	results := make([]string, len(pending))
	for i, q := range pending {
		if !a.inflight.Begin(copilot.KindSuggestion, q.ID) {
			continue
		}
		g.Go(func() error {
			defer a.inflight.End(copilot.KindSuggestion, q.ID)
			results[i] = a.copilot.SuggestValue(ctx, q, profile)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s := currentStyles()
	for i, q := range pending {
		suggestion := results[i]
		if suggestion == "" {
			fmt.Printf("%s: %s\n", q.ID, s.Muted.Render("no suggestion"))
			continue
		}
		a.store.UpsertQuestion(q.ID, store.QuestionUpdate{AISuggestion: &suggestion})
		fmt.Printf("%s: %s\n", q.ID, s.Info.Render(suggestion))
	}
	return nil
}
