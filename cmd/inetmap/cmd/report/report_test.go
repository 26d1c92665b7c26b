package report

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockapp "github.com/agentstation/inetmap/internal/cmd/application"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

func testMock() *mockapp.Mock {
	return &mockapp.Mock{
		PrepareFunc: func(context.Context, prepare.Request) (*reconciler.Result, error) {
			return &reconciler.Result{
				Year:           2016,
				Tier:           reconciler.TierFullCoverage,
				Threshold:      2015,
				TotalCountries: 2,
				Coverage:       []reconciler.YearCoverage{{Year: 2016, Countries: 2}},
			}, nil
		},
	}
}

func TestReportStdout(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewCommand(testMock())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--no-timestamp", "--map", "world.svg"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	body := buf.String()
	assert.Contains(t, body, "# Global Internet Usage by Country, 2016")
	assert.Contains(t, body, "(world.svg)")
	assert.NotContains(t, body, "Generated")
}

func TestReportFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "README.md")
	cmd := NewCommand(testMock())
	cmd.SetArgs([]string{"--out", out})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Coverage by year")
	assert.Contains(t, string(data), "Generated")
}
