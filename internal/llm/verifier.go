package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/akorzun/planassay/internal/model"
)

// Verifier checks a generated plan document against an assertion list and
// returns pass/fail plus an evidence snippet per assertion. The verdicts
// come from the external model; the core only defines the contract.
type Verifier struct {
	client Client
	logger *zap.Logger
}

// NewVerifier creates a verifier
func NewVerifier(client Client, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{client: client, logger: logger}
}

type verificationItem struct {
	AssertionID string `json:"assertion_id"`
	Status      string `json:"status"`
	Evidence    string `json:"evidence"`
}

// Verify evaluates every assertion unit against the plan text. Results are
// returned keyed by assertion id; units the model skipped get no result.
func (v *Verifier) Verify(ctx context.Context, planText string, units []model.AssertionUnit) ([]model.VerificationResult, error) {
	if len(units) == 0 {
		return nil, nil
	}

	resp, err := v.client.Complete(ctx, CompletionRequest{
		System:      verifySystemPrompt,
		Prompt:      buildVerifyPrompt(planText, units),
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("verification call: %w", err)
	}

	var items []verificationItem
	if err := json.Unmarshal([]byte(extractJSON(resp.Text)), &items); err != nil {
		v.logger.Error("unparseable verification response",
			zap.String("response", resp.Text),
			zap.Error(err))
		return nil, fmt.Errorf("parse verification response: %w", err)
	}

	known := make(map[string]bool, len(units))
	for _, u := range units {
		known[u.AssertionID] = true
	}

	var results []model.VerificationResult
	for _, item := range items {
		if !known[item.AssertionID] {
			v.logger.Warn("verifier returned unknown assertion id",
				zap.String("assertion_id", item.AssertionID))
			continue
		}
		status := model.VerificationStatus(strings.ToLower(strings.TrimSpace(item.Status)))
		if status != model.VerificationPass && status != model.VerificationFail {
			return nil, fmt.Errorf("invalid verification status %q for %s", item.Status, item.AssertionID)
		}
		results = append(results, model.VerificationResult{
			AssertionID: item.AssertionID,
			Status:      status,
			Evidence:    strings.TrimSpace(item.Evidence),
		})
	}

	return results, nil
}

const verifySystemPrompt = `You verify assertions about a meeting workback plan against the plan text. You respond with strict JSON only, no prose.`

func buildVerifyPrompt(planText string, units []model.AssertionUnit) string {
	var b strings.Builder

	b.WriteString("Plan document:\n---\n")
	b.WriteString(planText)
	b.WriteString("\n---\n\nAssertions to verify:\n")

	for _, u := range units {
		fmt.Fprintf(&b, "- %s: %s\n", u.AssertionID, u.InstantiatedText)
	}

	b.WriteString(`
For each assertion, decide pass or fail against the plan text only, and
quote the shortest plan snippet that supports the verdict.

Respond with a JSON array:
[{"assertion_id": "A0000_S5", "status": "pass", "evidence": "quoted snippet"}]
`)

	return b.String()
}
