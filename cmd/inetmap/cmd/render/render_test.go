package render

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockapp "github.com/agentstation/inetmap/internal/cmd/application"
	"github.com/agentstation/inetmap/pkg/boundary"
	"github.com/agentstation/inetmap/pkg/errors"
	"github.com/agentstation/inetmap/pkg/prepare"
	"github.com/agentstation/inetmap/pkg/reconciler"
)

func testResult() *reconciler.Result {
	v := 75.0
	square := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}}
	return &reconciler.Result{
		Year:           2016,
		Tier:           reconciler.TierFullCoverage,
		Threshold:      2015,
		TotalCountries: 1,
		Coverage:       []reconciler.YearCoverage{{Year: 2016, Countries: 1}},
		Records: []reconciler.Record{
			{ISOA3: "FRA", AdminName: "France", Year: 2016, UsagePercent: &v, Geometry: square},
		},
		Boundaries: boundary.Collection{
			{ISOA3: "FRA", AdminName: "France", Geometry: square},
		},
	}
}

func newMock(t *testing.T, got *prepare.Request) *mockapp.Mock {
	t.Helper()
	return &mockapp.Mock{
		Width:  400,
		Height: 300,
		RequestFunc: func() prepare.Request {
			return prepare.Request{UsagePath: "usage.csv", BoundaryPath: "world.geojson", Threshold: 2015}
		},
		PrepareFunc: func(_ context.Context, req prepare.Request) (*reconciler.Result, error) {
			if got != nil {
				*got = req
			}
			return testResult(), nil
		},
	}
}

func TestRenderSVGFile(t *testing.T) {
	var req prepare.Request
	out := filepath.Join(t.TempDir(), "maps", "map.svg")

	cmd := NewCommand(newMock(t, &req))
	cmd.SetArgs([]string{"--out", out, "--threshold", "2018"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Equal(t, 2018, req.Threshold)
	assert.Equal(t, "usage.csv", req.UsagePath)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	body := string(data)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "<?xml"))
	assert.Contains(t, body, "Global Internet Usage by Country, 2016")
	assert.Contains(t, body, "France: 75.0%")
}

func TestRenderPNGStdout(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewCommand(newMock(t, nil))
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--out", "-", "--image-format", "png", "--width", "200", "--height", "120"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 120, img.Bounds().Dy())
}

func TestRenderWrapsPrepareError(t *testing.T) {
	mock := newMock(t, nil)
	mock.PrepareFunc = func(context.Context, prepare.Request) (*reconciler.Result, error) {
		return nil, errors.NewNoJoinableDataError(3, 2)
	}

	cmd := NewCommand(mock)
	cmd.SetArgs([]string{"--out", filepath.Join(t.TempDir(), "map.svg")})
	cmd.SilenceUsage = true
	err := cmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "unable to render map: "))
	assert.True(t, errors.IsNoJoinableData(err))
}

func TestResolveEncoding(t *testing.T) {
	tests := []struct {
		out, format string
		want        string
		wantErr     bool
	}{
		{out: "map.svg", want: "svg"},
		{out: "map.PNG", want: "png"},
		{out: "-", want: "svg"},
		{out: "-", format: "PNG", want: "png"},
		{out: "map.svg", format: "gif", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.out+"/"+tt.format, func(t *testing.T) {
			got, err := resolveEncoding(tt.out, tt.format)
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
