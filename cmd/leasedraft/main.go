package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/leasedraft/internal/budget"
	"github.com/dshills/leasedraft/internal/captcha"
	"github.com/dshills/leasedraft/internal/clauses"
	"github.com/dshills/leasedraft/internal/config"
	"github.com/dshills/leasedraft/internal/generate"
	"github.com/dshills/leasedraft/internal/leads"
	"github.com/dshills/leasedraft/internal/llm"
	"github.com/dshills/leasedraft/internal/ratelimit"
	"github.com/dshills/leasedraft/internal/render"
	"github.com/dshills/leasedraft/internal/server"
	"github.com/dshills/leasedraft/internal/spec"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

// codeError returns an exitErr for the given code.
func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	root := &cobra.Command{
		Use:   "leasedraft",
		Short: "Draft plain-language residential leases",
		Long:  "LeaseDraft turns a structured lease specification into a downloadable, jurisdiction-aware lease document, either as an HTTP service or from the command line.",
	}
	root.Version = version

	root.AddCommand(serveCmd(), generateCmd(), clausesCmd())

	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		// cobra already printed the error
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the lease generation HTTP service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file (environment overrides)")
	return cmd
}

func runServe(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return codeError(3, "loading config: %s", err)
	}

	log, err := zap.NewProduction()
	if err != nil {
		return codeError(3, "creating logger: %s", err)
	}
	defer log.Sync()
	server.Version = version

	provider, err := llm.NewProvider(cfg.Model)
	if err != nil {
		return codeError(4, "creating LLM provider: %s", err)
	}

	tracker := budget.NewDailyTracker(cfg.MaxDailyCost, log)
	gen := generate.New(provider, tracker, log)
	gen.MaxTokens = cfg.MaxOutputTokens
	gen.WordCeiling = cfg.WordCeiling
	gen.Version = version
	gen.Reporter = budget.NewReporter(cfg.CostWebhookURL, log)

	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	verifier, err := captcha.NewVerifier(cfg.CaptchaProvider, cfg.CaptchaSecret(), log)
	if err != nil {
		return codeError(3, "configuring captcha: %s", err)
	}
	store := leads.NewStore(cfg.LeadCSVPath, cfg.LeadWebhookURL, log)

	srv := server.New(cfg, gen, limiter, verifier, store, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		return codeError(5, "server: %s", err)
	}
	return nil
}

// generateFlags holds the parsed flags for the generate command.
type generateFlags struct {
	out         string
	format      string
	model       string
	stub        bool
	temperature float64
	maxTokens   int
	wordCeiling int
}

func generateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate <spec-file>",
		Short: "Draft one lease from a specification JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(args[0], flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.out, "out", "lease.docx", "Output file path")
	f.StringVar(&flags.format, "format", "docx", "Output format")
	f.StringVar(&flags.model, "model", "", "provider:model (defaults to LEASEDRAFT_MODEL)")
	f.BoolVar(&flags.stub, "stub", false, "Use the offline stub provider instead of a live model")
	f.Float64Var(&flags.temperature, "temperature", generate.DefaultTemperature, "LLM temperature")
	f.IntVar(&flags.maxTokens, "max-tokens", 3000, "Maximum response tokens")
	f.IntVar(&flags.wordCeiling, "word-ceiling", 0, "Approximate word cap for the drafted lease (0 = default)")
	return cmd
}

func runGenerate(specPath string, flags generateFlags) error {
	raw, err := os.ReadFile(specPath)
	if err != nil {
		return codeError(3, "reading spec file: %s", err)
	}

	input, err := spec.Validate(raw)
	if err != nil {
		var verrs spec.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", fe.Path, fe.Reason)
			}
		}
		return codeError(3, "invalid specification: %s", specPath)
	}

	modelStr := flags.model
	if flags.stub {
		modelStr = "stub:canned"
	}
	if modelStr == "" {
		modelStr = os.Getenv("LEASEDRAFT_MODEL")
	}
	if modelStr == "" {
		return codeError(3, "no model configured: pass --model, --stub, or set LEASEDRAFT_MODEL")
	}

	provider, err := llm.NewProvider(modelStr)
	if err != nil {
		return codeError(4, "creating LLM provider: %s", err)
	}

	gen := generate.New(provider, nil, nil)
	gen.Temperature = flags.temperature
	gen.MaxTokens = flags.maxTokens
	gen.WordCeiling = flags.wordCeiling
	gen.Version = version

	lease, usage, err := gen.Generate(context.Background(), input)
	if err != nil {
		return codeError(5, "drafting lease: %s", err)
	}

	renderer, err := render.NewRenderer(flags.format)
	if err != nil {
		return codeError(3, "invalid format: %s", err)
	}
	fileBytes, err := renderer.Render(lease, render.DefaultOptions())
	if err != nil {
		return codeError(5, "rendering document: %s", err)
	}

	if err := os.WriteFile(flags.out, fileBytes, 0o644); err != nil {
		return codeError(3, "writing output file: %s", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d clauses, %d tokens)\n", flags.out, len(lease.Clauses), usage.Total)
	return nil
}

func clausesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clauses",
		Short: "Inspect the jurisdiction clause library",
	}

	listCmd := &cobra.Command{
		Use:   "list [jurisdiction]",
		Short: "List known jurisdictions, or the resolved clause set for one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, code := range clauses.Jurisdictions() {
					fmt.Println(code)
				}
				return nil
			}
			code := args[0]
			if !clauses.Known(code) {
				fmt.Fprintf(os.Stderr, "WARN: unknown jurisdiction %s, showing base clause set\n", code)
			}
			for _, e := range clauses.Resolve(code) {
				fmt.Printf("%-22s %s\n", e.Key, e.Title)
			}
			return nil
		},
	}

	diffCmd := &cobra.Command{
		Use:   "diff <jurisdiction>",
		Short: "Show how a jurisdiction rewrites the base clauses, in patch form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !clauses.Known(args[0]) {
				return codeError(3, "unknown jurisdiction: %s", args[0])
			}
			fmt.Print(clauses.DiffText(args[0]))
			return nil
		},
	}

	cmd.AddCommand(listCmd, diffCmd)
	return cmd
}
