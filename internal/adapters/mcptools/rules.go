package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/okian/pitchgate/internal/domain/scoring"
)

// RulesTool handles the pitch_rules MCP tool.
type RulesTool struct{}

// NewRulesTool creates a RulesTool.
func NewRulesTool() *RulesTool {
	return &RulesTool{}
}

// Definition returns the MCP tool definition for pitch_rules.
func (t *RulesTool) Definition() mcp.Tool {
	return mcp.NewTool("pitch_rules",
		mcp.WithDescription("List the pitch form fields, their points and what satisfies each one."),
	)
}

// Handle processes the pitch_rules tool call.
func (t *RulesTool) Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	table := scoring.Describe()

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Pitch Rules (%s)\n\n", table.RulesVersion)
	fmt.Fprintf(&sb, "Maximum: %d points. The score is earned/maximum, rounded.\n\n", table.MaxScore)
	sb.WriteString("| field | label | points | hint |\n|---|---|---|---|\n")
	for _, r := range table.Rules {
		label := r.Label
		if r.Optional {
			label += " (bonus)"
		}
		fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", r.Field, label, r.Points, r.Hint)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
