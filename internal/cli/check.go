package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/pipeline"
)

var (
	checkFormat  string
	checkOut     string
	checkTimeout time.Duration
	noCache      bool
	withFringe   bool
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <claim>",
	Short: "Fact-check a single claim",
	Long: `Check searches outlets across the political spectrum and professional
fact-checkers for coverage of the claim, judges each article against it and
prints the aggregated verdict.

Example:
  crosscheck check "Vaccines contain microchips"
  crosscheck check "Unemployment fell to 3.5% in 2023" --format yaml
  crosscheck check "The moon landing was faked" --out verdict.json --fringe`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "json", "output format (json, yaml)")
	checkCmd.Flags().StringVarP(&checkOut, "out", "o", "", "write the result to a file instead of stdout")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory cache")
	checkCmd.Flags().BoolVar(&withFringe, "fringe", false, "also search fringe sources (reported, not counted by default)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	claim := strings.Join(args, " ")

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	if verbose {
		status := engine.Status()
		fmt.Fprintf(os.Stderr, "Checking: %s\n", claim)
		fmt.Fprintf(os.Stderr, "Sources:  %d\n", len(engine.SelectSources()))
		fmt.Fprintf(os.Stderr, "AI:       %v %s\n", status.AIEnabled, status.Provider)
		fmt.Fprintf(os.Stderr, "Reviews:  google=%v claimbuster=%v\n", status.GoogleFactCheck, status.ClaimBuster)
		fmt.Fprintln(os.Stderr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	resp := engine.AnalyzeClaim(ctx, claim)

	var w io.Writer = cmd.OutOrStdout()
	if checkOut != "" {
		f, err := os.Create(checkOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if err := writeResponse(w, resp, checkFormat); err != nil {
		return err
	}
	if checkOut != "" {
		fmt.Fprintf(os.Stderr, "✓ %s (%d%% confidence) written to %s\n", resp.OverallRating, resp.Confidence, checkOut)
	}
	return nil
}

// applyRunFlags folds flags shared by check and batch into cfg
func applyRunFlags(cfg *model.Config) {
	if noCache {
		cfg.Cache.Enabled = false
	}
	if withFringe {
		cfg.Sources.IncludeFringe = true
	}
}

func buildEngine(cfg *model.Config) (*pipeline.Engine, error) {
	engine, err := pipeline.New(cfg, pipeline.WithLogger(newLogger(cfg)))
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, nil
}

func writeResponse(w io.Writer, resp *model.AnalyzeResponse, format string) error {
	switch strings.ToLower(format) {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (supported: json, yaml)", format)
	}
}
