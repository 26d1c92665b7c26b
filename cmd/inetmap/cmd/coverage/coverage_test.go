package coverage

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockapp "github.com/agentstation/inetmap/internal/cmd/application"
	"github.com/agentstation/inetmap/internal/cmd/output"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

func testResult() *reconciler.Result {
	return &reconciler.Result{
		Year:           2017,
		Tier:           reconciler.TierBestCoverage,
		Threshold:      2015,
		TotalCountries: 4,
		Coverage: []reconciler.YearCoverage{
			{Year: 2014, Countries: 4},
			{Year: 2016, Countries: 3},
			{Year: 2017, Countries: 3},
		},
	}
}

func TestCoverageJSON(t *testing.T) {
	mock := &mockapp.Mock{
		OutputFormatFunc: func() string { return "json" },
		PrepareFunc: func(context.Context, prepare.Request) (*reconciler.Result, error) {
			return testResult(), nil
		},
	}

	var buf bytes.Buffer
	cmd := NewCommand(mock)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	var report output.CoverageReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 2017, report.Year)
	assert.Equal(t, "best_coverage", report.Tier)
	require.Len(t, report.Years, 3)
	assert.False(t, report.Years[0].Eligible)
	assert.True(t, report.Years[2].Selected)
	assert.False(t, report.Years[1].Selected)
}

func TestCoverageTable(t *testing.T) {
	mock := &mockapp.Mock{
		PrepareFunc: func(context.Context, prepare.Request) (*reconciler.Result, error) {
			return testResult(), nil
		},
	}

	var buf bytes.Buffer
	cmd := NewCommand(mock)
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, buf.String(), "3/4")
	assert.Contains(t, buf.String(), "Selected 2017 (best_coverage)")
}

func TestCoveragePassesFlags(t *testing.T) {
	var got prepare.Request
	mock := &mockapp.Mock{
		OutputFormatFunc: func() string { return "yaml" },
		RequestFunc: func() prepare.Request {
			return prepare.Request{UsagePath: "a.csv", BoundaryPath: "b.geojson", Threshold: 2015}
		},
		PrepareFunc: func(_ context.Context, req prepare.Request) (*reconciler.Result, error) {
			got = req
			return testResult(), nil
		},
	}

	cmd := NewCommand(mock)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--usage", "other.csv", "--value-column", "Share"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, prepare.Request{
		UsagePath:    "other.csv",
		BoundaryPath: "b.geojson",
		Threshold:    2015,
		ValueColumn:  "Share",
	}, got)
}

func TestCoverageError(t *testing.T) {
	mock := &mockapp.Mock{
		PrepareFunc: func(context.Context, prepare.Request) (*reconciler.Result, error) {
			return nil, errors.NewEmptyDatasetError("usage", "no country rows")
		},
	}

	cmd := NewCommand(mock)
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())
	assert.True(t, errors.IsEmptyDataset(err))
}
