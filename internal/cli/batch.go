package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/crosscheck/internal/model"
	"github.com/ppiankov/crosscheck/internal/worker"
)

var (
	concurrency  int
	batchOut     string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check many claims from a file in parallel",
	Long: `Batch processes claims concurrently:
- Read claims from the input file (one per line, # starts a comment)
- Check claims in parallel with a configurable worker count
- Write one JSON object per claim, in input order

Example:
  crosscheck batch claims.txt
  crosscheck batch claims.txt --concurrency 2 --out verdicts.jsonl
  crosscheck batch claims.txt --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 2, "claims checked at once (each claim fans out further)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "write JSON lines to a file instead of stdout")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the in-memory cache")
	batchCmd.Flags().BoolVar(&withFringe, "fringe", false, "also search fringe sources")
}

type batchLine struct {
	Index    int                    `json:"index"`
	Claim    string                 `json:"claim"`
	Error    string                 `json:"error,omitempty"`
	Response *model.AnalyzeResponse `json:"response,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := currentConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cfg)

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "  crosscheck Batch Processing\n")
		fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
		fmt.Fprintf(os.Stderr, "  Workers:      %d\n", concurrency)
		fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
		fmt.Fprintf(os.Stderr, "\n")
	}

	processor := worker.NewBatchProcessor(engine, max(concurrency, 1))
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if batchOut != "" {
		f, err := os.Create(batchOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	failures, err := writeBatch(w, results)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "✓ Checked %d claims (%d failed)\n", len(results), failures)
	return nil
}

// writeBatch writes one JSON line per result and counts the failures
func writeBatch(w io.Writer, results []*worker.ClaimResult) (int, error) {
	enc := json.NewEncoder(w)
	failures := 0
	for _, r := range results {
		line := batchLine{Index: r.Index, Claim: r.Claim}
		if r.Error != nil {
			failures++
			line.Error = r.Error.Error()
		} else {
			line.Response = r.Response
		}
		if err := enc.Encode(line); err != nil {
			return failures, fmt.Errorf("write result %d: %w", r.Index, err)
		}
	}
	return failures, nil
}
