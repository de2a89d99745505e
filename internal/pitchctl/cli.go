package pitchctl

import (
	"io"
)

// ShowHelp prints usage information for pitchctl.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `pitchctl
========

Score pitch forms offline and smoke test a running pitchgate server.

Usage:
  pitchctl <command> [options]

Commands:
  score   Score a pitch form JSON file and report the generation gate
          -file string     form JSON, "-" for stdin (required)
          -min-score int   generation threshold (default 50)
          -json            print the preview as JSON

  reveal  Show which sections of a result are visible
          -file string     pitches JSON or a /api/generate response (required)
          -verified        treat the email as verified

  smoke   Exercise a running server
          -url string         base URL (default "http://localhost:9080")
          -requests int       score previews to submit (default 200)
          -workers int        concurrent workers (default CPU cores * 2)
          -timeout duration   HTTP request timeout (default 30s)
          -email string       address for the verification round trip
          -generate           also call POST /api/generate
          -verbose            log every failed request

Examples:
  pitchctl score -file pitch.json
  pitchctl reveal -file response.json -verified
  pitchctl smoke -url http://localhost:8080 -requests 1000
`)
}
