// internal/workers/batch/batch-runner/selection.go
package batchrunner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidBatch      = errors.New("INVALID_BATCH_NUMBER")
	ErrBatchOutOfRange   = errors.New("BATCH_OUT_OF_RANGE")
	ErrInvalidBatchSize  = errors.New("INVALID_BATCH_SIZE")
	ErrNoIndustriesGiven = errors.New("NO_INDUSTRIES_GIVEN")
)

// TestModeIndustries is the fixed smoke-test set.
var TestModeIndustries = []string{"Hair Salons", "Dentists", "Law Firms"}

// Selection describes which industries a run should cover.
// Precedence: TestMode, then Industries, then Batch, then the full list.
type Selection struct {
	TestMode   bool
	Industries string // comma-separated override
	Batch      *int   // 1-based; nil when not requested
	BatchSize  int
	Limit      int
}

// Select resolves sel against the full industry list and returns the industries and limit to run with.
func Select(all []string, sel Selection) ([]string, int, error) {
	switch {
	case sel.TestMode:
		return TestModeIndustries, len(TestModeIndustries), nil

	case strings.TrimSpace(sel.Industries) != "":
		var picked []string
		for _, name := range strings.Split(sel.Industries, ",") {
			if name = strings.TrimSpace(name); name != "" {
				picked = append(picked, name)
			}
		}
		if len(picked) == 0 {
			return nil, 0, ErrNoIndustriesGiven
		}
		return picked, sel.Limit, nil

	case sel.Batch != nil:
		batch, err := BatchSlice(all, *sel.Batch, sel.BatchSize)
		if err != nil {
			return nil, 0, err
		}
		return batch, sel.Limit, nil
	}

	return all, sel.Limit, nil
}

// BatchSlice returns industries [(n-1)*size, min(n*size, len)).
func BatchSlice(all []string, n, size int) ([]string, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, size)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: %d (batches start at 1)", ErrInvalidBatch, n)
	}
	// compare before multiplying so huge batch numbers cannot overflow
	if len(all) == 0 || n-1 > (len(all)-1)/size {
		total := (len(all) + size - 1) / size
		return nil, fmt.Errorf("%w: batch %d of %d", ErrBatchOutOfRange, n, total)
	}
	start := (n - 1) * size
	end := len(all)
	if size < end-start {
		end = start + size
	}
	return all[start:end], nil
}
