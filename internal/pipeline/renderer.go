package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/akorzun/planassay/internal/model"
)

// Renderer writes analysis reports to JSON and Markdown
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes any report value as indented JSON
func (r *Renderer) RenderJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes one report as a human-readable Markdown document
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Assertion Analysis\n\n")
	fmt.Fprintf(&b, "- **Input**: %s\n", report.Input)
	fmt.Fprintf(&b, "- **Stage**: %s\n", report.Stage)
	fmt.Fprintf(&b, "- **Analyzed**: %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 UTC"))
	if report.Context != "" {
		fmt.Fprintf(&b, "- **Context**: %s\n", report.Context)
	}
	b.WriteString("\n")

	if report.Failed() {
		fmt.Fprintf(&b, "## Failure\n\n**%s**: %s\n", report.Failure.Kind, report.Failure.Message)
	} else {
		b.WriteString("## Assertion Units\n\n")
		b.WriteString("| ID | Parent | Dim | Level | Weight | Text |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, u := range report.Units {
			parent := u.ParentAssertionID
			if parent == "" {
				parent = "—"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %d | %s |\n",
				u.AssertionID, parent, u.DimensionID, u.Level, u.Weight, u.InstantiatedText)
		}

		verified := 0
		passed := 0
		for _, u := range report.Units {
			if u.Verification != nil {
				verified++
				if u.Verification.Status == model.VerificationPass {
					passed++
				}
			}
		}
		if verified > 0 {
			fmt.Fprintf(&b, "\n## Verification\n\n%d/%d passed\n", passed, verified)
			for _, u := range report.Units {
				if u.Verification != nil && u.Verification.Status == model.VerificationFail {
					fmt.Fprintf(&b, "- **%s** failed: %s\n", u.AssertionID, u.Verification.Evidence)
				}
			}
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by planassay*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a one-screen result for a single analysis to stdout
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	if report.Failed() {
		fmt.Printf("✗ %s: %s\n", report.Failure.Kind, report.Failure.Message)
		return
	}

	structural := 0
	grounding := 0
	for _, u := range report.Units {
		if u.Layer == model.LayerStructural {
			structural++
		} else {
			grounding++
		}
	}
	fmt.Printf("✓ %d unit(s): %d structural, %d grounding\n", len(report.Units), structural, grounding)
	for _, u := range report.Units {
		indent := ""
		if u.ParentAssertionID != "" {
			indent = "  └─ "
		}
		fmt.Printf("  %s%s [%s/%s] %s\n", indent, u.AssertionID, u.Level, u.DimensionID, u.InstantiatedText)
	}
}

// RenderBatchSummaryMarkdown writes the batch summary as Markdown
func (r *Renderer) RenderBatchSummaryMarkdown(summary *model.BatchSummary, path string) error {
	var b strings.Builder

	b.WriteString("# Batch Summary\n\n")
	fmt.Fprintf(&b, "- **Run**: %s\n", summary.RunID)
	fmt.Fprintf(&b, "- **Inputs**: %d (%d succeeded, %d failed)\n", summary.Total, summary.Succeeded, summary.Failed)
	fmt.Fprintf(&b, "- **Units produced**: %d\n", summary.TotalUnits)
	fmt.Fprintf(&b, "- **Duration**: %s\n", summary.Duration.Round(time.Millisecond))

	if summary.Verification != nil {
		fmt.Fprintf(&b, "- **Verification**: %d pass / %d fail\n",
			summary.Verification.Pass, summary.Verification.Fail)
	}

	if len(summary.DimensionHits) > 0 {
		b.WriteString("\n## Dimension Hits\n\n")
		ids := make([]string, 0, len(summary.DimensionHits))
		for id := range summary.DimensionHits {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			fmt.Fprintf(&b, "- %s: %d\n", id, summary.DimensionHits[id])
		}
	}

	if len(summary.FailedInputs) > 0 {
		b.WriteString("\n## Failed Inputs\n\n")
		for _, f := range summary.FailedInputs {
			fmt.Fprintf(&b, "- line %d (%s): %s\n", f.BatchIndex, f.Kind, f.Input)
		}
	}

	if r.includeFooter {
		b.WriteString("\n---\n*Generated by planassay*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
