// internal/workers/batch/batch-runner/selection_test.go
package batchrunner

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestBatchSlice(t *testing.T) {
	all := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name    string
		n, size int
		want    []string
		wantErr error
	}{
		{"first", 1, 2, []string{"a", "b"}, nil},
		{"last partial", 3, 2, []string{"e"}, nil},
		{"exact", 1, 5, all, nil},
		{"zero", 0, 2, nil, ErrInvalidBatch},
		{"negative", -1, 2, nil, ErrInvalidBatch},
		{"past end", 4, 2, nil, ErrBatchOutOfRange},
		{"bad size", 1, 0, nil, ErrInvalidBatchSize},
		{"huge batch number", math.MaxInt, 10, nil, ErrBatchOutOfRange},
		{"huge size", 1, math.MaxInt, all, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BatchSlice(all, tt.n, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelect_HugeBatchIsOutOfRange(t *testing.T) {
	all := []string{"Hair Salons", "Dentists", "Law Firms"}

	got, _, err := Select(all, Selection{Batch: intPtr(math.MaxInt), BatchSize: 10})
	assert.ErrorIs(t, err, ErrBatchOutOfRange)
	assert.Nil(t, got)
}

func TestSelect_Precedence(t *testing.T) {
	all := []string{"Hair Salons", "Dentists", "Law Firms", "Plumbers"}

	got, limit, err := Select(all, Selection{TestMode: true, Industries: "Plumbers", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, TestModeIndustries, got)
	assert.Equal(t, 3, limit)

	got, limit, err = Select(all, Selection{Industries: " Plumbers , ,Bakeries", Batch: intPtr(9), Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbers", "Bakeries"}, got)
	assert.Equal(t, 1, limit)

	got, _, err = Select(all, Selection{Batch: intPtr(2), BatchSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbers"}, got)

	got, limit, err = Select(all, Selection{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, all, got)
	assert.Equal(t, 2, limit)
}

func TestSelect_Errors(t *testing.T) {
	all := []string{"Hair Salons"}

	_, _, err := Select(all, Selection{Batch: intPtr(0), BatchSize: 10})
	assert.ErrorIs(t, err, ErrInvalidBatch)

	_, _, err = Select(all, Selection{Batch: intPtr(2), BatchSize: 10})
	assert.ErrorIs(t, err, ErrBatchOutOfRange)
	assert.Contains(t, err.Error(), "batch 2 of 1")

	_, _, err = Select(all, Selection{Industries: " , "})
	assert.ErrorIs(t, err, ErrNoIndustriesGiven)
}
