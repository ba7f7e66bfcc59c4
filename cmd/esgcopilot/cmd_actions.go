package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"esgcopilot/internal/prompt"
	"esgcopilot/internal/store"
	"esgcopilot/internal/types"
)

var (
	actionImpact string
	actionEffort string
	actionStatus string
)

// actionsCmd groups the remediation board commands
var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "Manage the ESG remediation action board",
}

var actionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List action plan items",
	RunE:  actionsList,
}

var actionsAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add an action plan item",
	Args:  cobra.ExactArgs(1),
	RunE:  actionsAdd,
}

var actionsRmCmd = &cobra.Command{
	Use:   "rm [action-id]",
	Short: "Remove an action plan item",
	Args:  cobra.ExactArgs(1),
	RunE:  actionsRm,
}

var actionsMoveCmd = &cobra.Command{
	Use:   "move [action-id] [status]",
	Short: "Move an item across the board (Planned, In Progress, Done)",
	Args:  cobra.ExactArgs(2),
	RunE:  actionsMove,
}

var actionsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an AI action plan for the remaining gaps",
	Long: `Asks the copilot for 3-5 prioritized actions targeting the topics that
are still unanswered or in progress. Generated items are appended to the
board; existing items are never touched. Without an API key a fixed starter
plan is used instead.`,
	RunE: actionsGenerate,
}

func init() {
	actionsAddCmd.Flags().StringVar(&actionImpact, "impact", string(types.ImpactMedium), "Impact (High, Medium, Low)")
	actionsAddCmd.Flags().StringVar(&actionEffort, "effort", string(types.EffortMedium), "Effort (Hard, Medium, Easy)")
	actionsAddCmd.Flags().StringVar(&actionStatus, "status", string(types.ActionPlanned), "Status (Planned, In Progress, Done)")

	actionsCmd.AddCommand(actionsListCmd)
	actionsCmd.AddCommand(actionsAddCmd)
	actionsCmd.AddCommand(actionsRmCmd)
	actionsCmd.AddCommand(actionsMoveCmd)
	actionsCmd.AddCommand(actionsGenerateCmd)
}

func actionsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s := currentStyles()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tIMPACT\tEFFORT\tSTATUS")
	for _, item := range a.store.Actions() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			item.ID, truncate(item.Title, 56), item.Impact, item.Effort, s.ActionBadge(item.Status))
	}
	return w.Flush()
}

func actionsAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	item := types.ActionPlanItem{
		ID:     fmt.Sprintf("manual-%d", time.Now().UnixMilli()),
		Title:  args[0],
		Impact: types.Impact(actionImpact),
		Effort: types.Effort(actionEffort),
		Status: types.ActionStatus(actionStatus),
	}
	if !a.store.AddAction(item) {
		return fmt.Errorf("invalid action: check impact, effort, and status values")
	}
	fmt.Printf("Added %s: %s\n", item.ID, item.Title)
	return nil
}

func actionsRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	if !a.store.HasActionID(id) {
		return fmt.Errorf("unknown action %q", id)
	}
	a.store.DeleteAction(id)
	fmt.Printf("Removed %s\n", id)
	return nil
}

func actionsMove(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	status := types.ActionStatus(args[1])
	if !status.Valid() {
		return fmt.Errorf("unknown status %q (use Planned, In Progress, or Done)", args[1])
	}
	if !a.store.UpdateAction(id, store.ActionUpdate{Status: &status}) {
		return fmt.Errorf("unknown action %q", id)
	}
	fmt.Printf("%s is now %s\n", id, currentStyles().ActionBadge(status))
	return nil
}

func actionsGenerate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	topics := prompt.BuildUnfinishedTopics(a.store.Questions())
	generated := a.copilot.GenerateActionPlan(cmd.Context(), a.store.Company(), topics)
	if len(generated) == 0 {
		return fmt.Errorf("plan generation did not produce a usable plan; try again")
	}

	// Append to the board: existing items are preserved untouched.
	merged := append(a.store.Actions(), generated...)
	a.store.ReplaceActions(merged)

	s := currentStyles()
	fmt.Println(s.Title.Render(fmt.Sprintf("Added %d actions", len(generated))))
	for _, item := range generated {
		fmt.Printf("  %s  %-50s impact=%s effort=%s\n",
			item.ID, truncate(item.Title, 50), item.Impact, item.Effort)
	}
	return nil
}
