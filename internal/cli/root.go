// Package cli implements the coach command-line tool for offline transcript coaching.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"consultcoach/internal/config"
	"consultcoach/internal/logging"
	"consultcoach/internal/model"
	"consultcoach/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Deps holds the dependencies for coach commands.
type Deps struct {
	LoadConfig   func() (*config.Config, error)
	NewCompleter func(*config.AIConfig, zerolog.Logger) service.Completer
	ReadFile     func(string) ([]byte, error)
	WriteFile    func(string, []byte) error
	Out          io.Writer
	Err          io.Writer
}

// DefaultDeps returns the dependencies for production use.
func DefaultDeps() *Deps {
	return &Deps{
		LoadConfig:   config.Load,
		NewCompleter: DefaultCompleter,
		ReadFile:     os.ReadFile,
		WriteFile: func(path string, data []byte) error {
			return os.WriteFile(path, data, 0o644)
		},
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// DefaultCompleter uses Gemini when an API key is configured and the stub otherwise.
func DefaultCompleter(ai *config.AIConfig, logger zerolog.Logger) service.Completer {
	if ai.IsEnabled() {
		return service.NewGeminiClient(ai, logger)
	}
	logger.Warn().Msg("GEMINI_API_KEY not set, using stub completer")
	return service.NewStubClient()
}

type rootOptions struct {
	output  string
	model   string
	format  string
	verbose bool
}

// NewRootCommand creates the coach command with all subcommands.
func NewRootCommand(deps *Deps) *cobra.Command {
	if deps == nil {
		deps = DefaultDeps()
	}
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "coach",
		Short: "Consultation transcript coaching",
		Long: `coach analyzes consultation transcripts (.txt, .vtt, .srt) and answers
follow-up questions grounded in the transcript.

Examples:
  coach analyze call.vtt
  coach analyze call.srt --pdf coaching_report.pdf
  coach chat call.txt "How did I handle the budget question?"
  coach models`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(deps.Out)
	cmd.SetErr(deps.Err)

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", OutputText, "Output format: text, json, yaml")
	cmd.PersistentFlags().StringVarP(&opts.model, "model", "m", "", "Model id (default from config)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "", "Transcript format override: plain, vtt, srt")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newAnalyzeCommand(deps, opts))
	cmd.AddCommand(newChatCommand(deps, opts))
	cmd.AddCommand(newModelsCommand(deps, opts))

	return cmd
}

// runtime is what a command needs after config is loaded
type runtime struct {
	cfg       *config.Config
	logger    zerolog.Logger
	completer service.Completer
	model     string
}

func (o *rootOptions) setup(deps *Deps) (*runtime, error) {
	switch o.output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("invalid output format %q (want text, json or yaml)", o.output)
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.LogLevel
	if o.verbose {
		level = "debug"
	}
	// Logs go to stderr so stdout stays machine-readable.
	logger := logging.New(logging.Config{Level: level, Service: "coach", Output: deps.Err})

	modelID, ok := cfg.AI.ResolveModel(o.model)
	if !ok {
		return nil, fmt.Errorf("%w: %q", service.ErrModelNotAllowed, modelID)
	}

	return &runtime{
		cfg:       cfg,
		logger:    logger,
		completer: deps.NewCompleter(cfg.AI, logger),
		model:     modelID,
	}, nil
}

// loadTranscript reads and normalizes a transcript file.
func (o *rootOptions) loadTranscript(deps *Deps, path string) (*model.Transcript, error) {
	data, err := deps.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}

	var format model.TranscriptFormat
	if strings.TrimSpace(o.format) != "" {
		format, err = service.ParseFormat(o.format)
	} else {
		format, err = service.FormatFromFilename(path)
	}
	if err != nil {
		return nil, err
	}
	return service.NewTranscript(path, data, format)
}
