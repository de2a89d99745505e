package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
	"github.com/okian/pitchgate/pkg/metrics"
)

// ScoreTool handles the score_pitch MCP tool.
type ScoreTool struct {
	minScore int
}

// NewScoreTool creates a ScoreTool gating at minScore.
func NewScoreTool(minScore int) *ScoreTool {
	return &ScoreTool{minScore: gate.NewGeneration(minScore).MinScore}
}

// Definition returns the MCP tool definition for score_pitch.
func (t *ScoreTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Score a podcast guest pitch form. Returns the percentage, band, " +
			"per-field status and whether AI pitch generation would be allowed."),
		mcp.WithNumber("min_score",
			mcp.Description(fmt.Sprintf("Generation threshold in percent (default %d)", t.minScore)),
		),
		mcp.WithArray(model.FieldTitle,
			mcp.Description("Professional titles"),
			mcp.WithStringItems(),
		),
	}
	for _, r := range scoring.Rules() {
		if r.Field == model.FieldTitle {
			continue
		}
		opts = append(opts, mcp.WithString(r.Field, mcp.Description(fmt.Sprintf("%s: %s", r.Label, r.Hint))))
	}
	opts = append(opts, mcp.WithString(model.FieldAudienceBenefit,
		mcp.Description("What the audience gains (not scored)")))
	return mcp.NewTool("score_pitch", opts...)
}

// Handle processes the score_pitch tool call.
func (t *ScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	g := gate.NewGeneration(intArg(req, "min_score", t.minScore))
	form := formFromArgs(req)
	p := g.Preview(form)
	_, gateErr := g.Evaluate(form)
	metrics.RecordScore("mcp", p.Percentage)

	var sb strings.Builder
	sb.WriteString("## Pitch Score\n\n")
	fmt.Fprintf(&sb, "- **Score**: %d%% (%d/%d points)\n", p.Percentage, p.EarnedPoints, p.MaxPoints)
	fmt.Fprintf(&sb, "- **Band**: %s\n", p.Label)

	var rej *gate.Rejection
	switch {
	case gateErr == nil:
		fmt.Fprintf(&sb, "- **Generation**: allowed (minimum %d%%)\n", p.MinScore)
	case errors.As(gateErr, &rej):
		fmt.Fprintf(&sb, "- **Generation**: blocked, %s\n", rej.Message)
		for _, e := range rej.Errors {
			fmt.Fprintf(&sb, "  - %s\n", e)
		}
	default:
		return mcp.NewToolResultError(fmt.Sprintf("failed to evaluate pitch: %v", gateErr)), nil
	}

	if len(p.IncompleteFields) > 0 {
		fmt.Fprintf(&sb, "- **Incomplete**: %s\n", strings.Join(p.IncompleteFields, ", "))
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode preview: %v", err)), nil
	}
	sb.WriteString("\n```json\n")
	sb.Write(raw)
	sb.WriteString("\n```\n")
	return mcp.NewToolResultText(sb.String()), nil
}
