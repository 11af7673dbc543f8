package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/feedguard/feedguard/internal/model"
	"github.com/feedguard/feedguard/internal/pipeline"
	"github.com/feedguard/feedguard/internal/worker"
)

// Analyzer defines the interface for analyzing one content item
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (*model.AnalysisResult, error)
}

// AnalyzeJob represents one content analysis job
type AnalyzeJob struct {
	Request  pipeline.Request
	Analyzer Analyzer
}

// Execute runs the analysis job
func (j *AnalyzeJob) Execute(ctx context.Context) worker.Result {
	result, err := j.Analyzer.Analyze(ctx, j.Request)
	return &AnalyzeResult{
		Title:    j.Request.Raw.Title,
		Analysis: result,
		Error:    err,
	}
}

// AnalyzeResult represents the result of an analysis job
type AnalyzeResult struct {
	Title    string
	Analysis *model.AnalysisResult
	Error    error
}

// GetError returns the error from the analysis result
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// Processor analyzes multiple content items concurrently
type Processor struct {
	analyzer    Analyzer
	concurrency int
}

// NewProcessor creates a new batch processor
func NewProcessor(analyzer Analyzer, concurrency int) *Processor {
	return &Processor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessRequests analyzes multiple requests concurrently
func (b *Processor) ProcessRequests(ctx context.Context, requests []pipeline.Request) []*AnalyzeResult {
	if len(requests) == 0 {
		return []*AnalyzeResult{}
	}

	pool := worker.NewPool(b.concurrency)
	pool.Start()

	for _, req := range requests {
		pool.Submit(&AnalyzeJob{
			Request:  req,
			Analyzer: b.analyzer,
		})
	}

	results := pool.Wait()

	analyzeResults := make([]*AnalyzeResult, len(results))
	for i, result := range results {
		analyzeResults[i] = result.(*AnalyzeResult)
	}

	return analyzeResults
}

// ProcessFile reads analysis requests from a JSONL file and processes them
// concurrently
func (b *Processor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	requests, err := ReadRequestsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}

	return b.ProcessRequests(ctx, requests), nil
}

// ReadRequestsFromFile reads analysis requests from a JSONL file, one JSON
// object per line. Empty lines and # comments are skipped.
func ReadRequestsFromFile(filePath string) ([]pipeline.Request, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var requests []pipeline.Request

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var req pipeline.Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			return nil, fmt.Errorf("line %d: decode request: %w", lineNo, err)
		}
		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return requests, nil
}
