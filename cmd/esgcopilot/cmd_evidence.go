package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"esgcopilot/internal/store"
	"esgcopilot/internal/types"
)

var (
	evidenceDocType  string
	evidenceQuestion string
)

// evidenceCmd groups the evidence register commands
var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Manage the supporting-document register",
}

var evidenceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered evidence documents, newest first",
	RunE:  evidenceList,
}

var evidenceAddCmd = &cobra.Command{
	Use:   "add [filename]",
	Short: "Register an evidence document",
	Long: `Registers a document in the evidence register. Only the filename and
document type are recorded; file contents are never read. Use --question to
link the document to an assessment question in the same step.`,
	Args: cobra.ExactArgs(1),
	RunE: evidenceAdd,
}

var evidenceRmCmd = &cobra.Command{
	Use:   "rm [evidence-id]",
	Short: "Remove a document and detach it from every question",
	Args:  cobra.ExactArgs(1),
	RunE:  evidenceRm,
}

var evidenceExtractCmd = &cobra.Command{
	Use:   "extract [evidence-id]",
	Short: "Ask the copilot to extract facts from a document",
	Long: `Runs AI extraction over a registered document. The extracted summary and
a confidence score are stored on the evidence record. Extraction is simulated
from the filename and document type; file contents are never uploaded.`,
	Args: cobra.ExactArgs(1),
	RunE: evidenceExtract,
}

func init() {
	evidenceAddCmd.Flags().StringVar(&evidenceDocType, "type", string(types.EvidenceOther), "Document type (Invoice, Policy, Report, Other)")
	evidenceAddCmd.Flags().StringVar(&evidenceQuestion, "question", "", "Question id to link the document to")

	evidenceCmd.AddCommand(evidenceListCmd)
	evidenceCmd.AddCommand(evidenceAddCmd)
	evidenceCmd.AddCommand(evidenceRmCmd)
	evidenceCmd.AddCommand(evidenceExtractCmd)
}

func evidenceList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFILENAME\tTYPE\tUPLOADED\tQUESTION\tCONFIDENCE")
	for _, ev := range a.store.Evidence() {
		confidence := "-"
		if ev.ConfidenceScore > 0 {
			confidence = fmt.Sprintf("%.0f%%", ev.ConfidenceScore*100)
		}
		question := ev.RelatedQuestionID
		if question == "" {
			question = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			ev.ID, ev.Filename, ev.Type, ev.UploadDate, question, confidence)
	}
	return w.Flush()
}

func evidenceAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	docType := types.EvidenceType(evidenceDocType)
	if !docType.Valid() {
		return fmt.Errorf("unknown document type %q", evidenceDocType)
	}
	if evidenceQuestion != "" {
		if _, ok := a.store.Question(evidenceQuestion); !ok {
			return fmt.Errorf("unknown question %q", evidenceQuestion)
		}
	}

	ev := types.Evidence{
		ID:                "ev-" + uuid.NewString(),
		Filename:          args[0],
		UploadDate:        time.Now().Format("2006-01-02"),
		Type:              docType,
		RelatedQuestionID: evidenceQuestion,
	}
	if !a.store.AddEvidence(ev) {
		return fmt.Errorf("could not register %q", args[0])
	}

	if evidenceQuestion != "" {
		q, _ := a.store.Question(evidenceQuestion)
		ids := append(q.EvidenceIDs, ev.ID)
		a.store.UpsertQuestion(evidenceQuestion, store.QuestionUpdate{EvidenceIDs: ids})
	}

	fmt.Printf("Registered %s as %s\n", ev.Filename, ev.ID)
	return nil
}

func evidenceRm(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	if _, ok := a.store.EvidenceByID(id); !ok {
		return fmt.Errorf("unknown evidence %q", id)
	}
	a.store.DeleteEvidence(id)
	fmt.Printf("Removed %s and detached it from all questions\n", id)
	return nil
}

func evidenceExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	id := args[0]
	ev, ok := a.store.EvidenceByID(id)
	if !ok {
		return fmt.Errorf("unknown evidence %q", id)
	}

	result := a.copilot.ExtractDocument(cmd.Context(), ev.Filename, ev.Type)
	facts := map[string]string{"summary": result.Text}
	a.store.AttachExtraction(id, facts, result.Confidence)

	s := currentStyles()
	fmt.Println(s.Title.Render(ev.Filename))
	fmt.Println(s.AgentResponse.Render(result.Text))
	if result.Confidence > 0 {
		fmt.Printf("\nConfidence: %s\n", s.Info.Render(fmt.Sprintf("%.0f%%", result.Confidence*100)))
	}
	return nil
}
