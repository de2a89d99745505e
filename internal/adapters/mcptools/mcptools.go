// Package mcptools exposes pitch scoring as MCP tools.
//
// Each tool is a struct with its dependencies, a Definition returning the
// mcp.Tool schema and a Handle processing a call.
package mcptools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/okian/pitchgate/internal/domain/model"
	"github.com/okian/pitchgate/internal/domain/scoring"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// NewServer builds an MCP server with every pitch tool registered.
func NewServer(minScore int) *server.MCPServer {
	s := server.NewMCPServer(
		"pitchgate",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	scoreTool := NewScoreTool(minScore)
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	rulesTool := NewRulesTool()
	s.AddTool(rulesTool.Definition(), rulesTool.Handle)
	return s
}

const instructions = `pitchgate scores podcast guest pitch forms.
Call pitch_rules to learn the fields and their points, then score_pitch with
whatever the guest has filled in to see the score, the weakest fields and
whether generation would be allowed.`

// formFromArgs reads every rule field from the call arguments. Title accepts
// an array of strings or one string.
func formFromArgs(req mcp.CallToolRequest) model.PitchForm {
	var form model.PitchForm
	args := req.GetArguments()
	for _, r := range scoring.Rules() {
		if r.Field == model.FieldTitle {
			form.Title = titlesArg(args[model.FieldTitle])
			continue
		}
		form.SetText(r.Field, req.GetString(r.Field, ""))
	}
	form.AudienceBenefit = req.GetString(model.FieldAudienceBenefit, "")
	return form
}

func titlesArg(v interface{}) model.Titles {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		return model.Titles{t}
	case []interface{}:
		out := make(model.Titles, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}
