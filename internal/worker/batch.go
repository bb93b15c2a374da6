package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/crosscheck/internal/model"
)

// Checker analyzes one claim. The pipeline engine satisfies it.
type Checker interface {
	AnalyzeClaim(ctx context.Context, claim string) *model.AnalyzeResponse
}

// ClaimJob analyzes a single claim from a batch
type ClaimJob struct {
	Index   int
	Claim   string
	Checker Checker
}

// Execute executes the claim job
func (j *ClaimJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ClaimResult{Index: j.Index, Claim: j.Claim, Error: err}
	}
	return &ClaimResult{
		Index:    j.Index,
		Claim:    j.Claim,
		Response: j.Checker.AnalyzeClaim(ctx, j.Claim),
	}
}

// ClaimResult represents the result of a claim job
type ClaimResult struct {
	Index    int                    `json:"index"`
	Claim    string                 `json:"claim"`
	Response *model.AnalyzeResponse `json:"response,omitempty"`
	Error    error                  `json:"-"`
}

// GetError returns the error from the claim result
func (r *ClaimResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many claims concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessClaims analyzes claims concurrently and returns results in input order
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*ClaimResult {
	if len(claims) == 0 {
		return []*ClaimResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for i, claim := range claims {
		pool.Submit(&ClaimJob{Index: i, Claim: claim, Checker: b.checker})
	}

	ordered := make([]*ClaimResult, len(claims))
	for _, result := range pool.Wait() {
		if cr, ok := result.(*ClaimResult); ok {
			ordered[cr.Index] = cr
		}
	}

	// Jobs dropped by cancellation or lost to a panic still get a slot
	for i, r := range ordered {
		if r == nil {
			err := ctx.Err()
			if err == nil {
				err = fmt.Errorf("claim was not processed")
			}
			ordered[i] = &ClaimResult{Index: i, Claim: claims[i], Error: err}
		}
	}

	return ordered
}

// ProcessFile reads claims from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ClaimResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line), skipping blanks,
// comments and duplicates
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key := strings.ToLower(line)
		if !seen[key] {
			seen[key] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
