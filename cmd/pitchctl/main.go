package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/pitchgate/internal/domain/gate"
	"github.com/okian/pitchgate/internal/pitchctl"
	"github.com/okian/pitchgate/pkg/logger"
)

// Default configuration constants.
const (
	defaultRequests     = 200
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultSmokeTimeout = 10 * time.Minute
)

func main() {
	if len(os.Args) < 2 {
		pitchctl.ShowHelp(os.Stderr)
		os.Exit(2)
	}
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "score":
		err = runScore(os.Args[2:])
	case "reveal":
		err = runReveal(os.Args[2:])
	case "smoke":
		err = runSmoke(os.Args[2:])
	case "help", "-h", "-help", "--help":
		pitchctl.ShowHelp(os.Stdout)
		return
	default:
		pitchctl.ShowHelp(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		os.Stderr.WriteString(os.Args[1] + " failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runScore(args []string) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	file := fs.String("file", "", "Pitch form JSON file (- for stdin)")
	minScore := fs.Int("min-score", gate.DefaultMinScore, "Generation threshold")
	asJSON := fs.Bool("json", false, "Print the preview as JSON")
	_ = fs.Parse(args)

	form, err := pitchctl.ReadForm(*file)
	if err != nil {
		return err
	}
	preview, gateErr := pitchctl.Score(form, *minScore)
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(preview)
	}
	return pitchctl.WriteReport(os.Stdout, preview, gateErr)
}

func runReveal(args []string) error {
	fs := flag.NewFlagSet("reveal", flag.ExitOnError)
	file := fs.String("file", "", "Pitches JSON or /api/generate response (- for stdin)")
	verified := fs.Bool("verified", false, "Treat the email as verified")
	_ = fs.Parse(args)

	p, err := pitchctl.ReadPitches(*file)
	if err != nil {
		return err
	}
	return pitchctl.WriteReveal(os.Stdout, pitchctl.Reveal(p, *verified))
}

func runSmoke(args []string) error {
	fs := flag.NewFlagSet("smoke", flag.ExitOnError)
	var (
		baseURL  = fs.String("url", "http://localhost:9080", "Base URL of the service")
		requests = fs.Int("requests", defaultRequests, "Number of score previews to submit")
		workers  = fs.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = fs.Duration("timeout", defaultTimeout, "HTTP request timeout")
		email    = fs.String("email", "", "Address for the verification round trip")
		generate = fs.Bool("generate", false, "Also call POST /api/generate")
		verbose  = fs.Bool("verbose", false, "Enable verbose logging")
	)
	_ = fs.Parse(args)

	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultSmokeTimeout)
	defer cancel()

	_, err := pitchctl.Run(ctx, &pitchctl.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  max(*workers, 1),
		Timeout:  *timeout,
		Email:    *email,
		Generate: *generate,
		Verbose:  *verbose,
	})
	return err
}
