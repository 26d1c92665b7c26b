package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/inetmap/cmd/application"
	"github.com/agentstation/inetmap/pkg/prepare"
)

const usageCSV = `Entity,Code,Year,Individuals using the Internet (% of population)
France,FRA,2016,79.3
France,FRA,2017,80.5
Germany,DEU,2016,84.2
World,OWID_WRL,2017,46.0
`

const worldGeoJSON = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"ISO_A3":"FRA","ADMIN":"France"},
 "geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}},
{"type":"Feature","properties":{"ISO_A3":"DEU","ADMIN":"Germany"},
 "geometry":{"type":"Polygon","coordinates":[[[5,0],[9,0],[9,4],[5,4],[5,0]]]}}
]}`

// writeDatasets writes a small usage/boundary pair and returns their paths.
func writeDatasets(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	usagePath := filepath.Join(dir, "usage.csv")
	boundaryPath := filepath.Join(dir, "world.geojson")
	if err := os.WriteFile(usagePath, []byte(usageCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(boundaryPath, []byte(worldGeoJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	return usagePath, boundaryPath
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	usagePath, boundaryPath := writeDatasets(t)
	return &Config{
		UsagePath:     usagePath,
		BoundaryPath:  boundaryPath,
		YearThreshold: 2015,
		CacheTTL:      time.Minute,
		Width:         300,
		Height:        200,
		Format:        "json",
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	logger := zerolog.Nop()
	opts = append([]Option{WithConfig(testConfig(t)), WithLogger(&logger)}, opts...)
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", opts...)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app, err := New("1.0.0", "abc123", "2024-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2024-01-01" {
		t.Errorf("Date() = %s, want 2024-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_WithConfigNil verifies a nil config is rejected.
func TestApp_WithConfigNil(t *testing.T) {
	if _, err := New("1.0.0", "", "", "", WithConfig(nil)); err == nil {
		t.Error("New(WithConfig(nil)) succeeded, want error")
	}
}

// TestApp_Request verifies the request mirrors the configuration.
func TestApp_Request(t *testing.T) {
	app := newTestApp(t)
	cfg := app.Config()

	want := prepare.Request{
		UsagePath:    cfg.UsagePath,
		BoundaryPath: cfg.BoundaryPath,
		Threshold:    2015,
	}
	if got := app.Request(); got != want {
		t.Errorf("Request() = %+v, want %+v", got, want)
	}

	w, h := app.MapSize()
	if w != 300 || h != 200 {
		t.Errorf("MapSize() = %d, %d, want 300, 200", w, h)
	}
}

// TestApp_Preparer_ThreadSafe verifies concurrent Preparer() calls share one instance.
func TestApp_Preparer_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]application.Preparer, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = app.Preparer()
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		if results[i] != results[0] {
			t.Fatalf("Preparer() returned different instances at %d", i)
		}
	}
}

// TestApp_PrepareAndShutdown runs the real preparer over temp files.
func TestApp_PrepareAndShutdown(t *testing.T) {
	app := newTestApp(t)

	result, err := app.Preparer().Prepare(context.Background(), app.Request())
	if err != nil {
		t.Fatalf("Prepare() failed: %v", err)
	}
	if result.Year != 2016 {
		t.Errorf("Year = %d, want 2016", result.Year)
	}

	p := app.Preparer().(*prepare.Preparer)
	if p.Stats().ItemCount != 1 {
		t.Errorf("cached items = %d, want 1", p.Stats().ItemCount)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if p.Stats().ItemCount != 0 {
		t.Errorf("cached items after shutdown = %d, want 0", p.Stats().ItemCount)
	}
}

// TestApp_ExecuteCoverage runs the root command end to end.
func TestApp_ExecuteCoverage(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&buf)
	root.SetArgs([]string{"coverage", "-o", "json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("coverage failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"tier": "full_coverage"`) {
		t.Errorf("coverage output missing tier:\n%s", out)
	}
	if !strings.Contains(out, `"year": 2016`) {
		t.Errorf("coverage output missing year:\n%s", out)
	}
}

// TestApp_ExecuteRender writes an SVG through the root command.
func TestApp_ExecuteRender(t *testing.T) {
	app := newTestApp(t)
	out := filepath.Join(t.TempDir(), "map.svg")

	if err := app.Execute(context.Background(), []string{"render", "--out", out}); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !strings.Contains(string(data), "Germany: 84.2%") {
		t.Error("rendered SVG missing Germany label")
	}
}

// TestApp_ExecuteRenderError verifies the error prefix for a bad input path.
func TestApp_ExecuteRenderError(t *testing.T) {
	app := newTestApp(t)

	err := app.Execute(context.Background(), []string{
		"render", "--usage", filepath.Join(t.TempDir(), "missing.csv"), "--out", "-",
	})
	if err == nil {
		t.Fatal("render succeeded with a missing usage file")
	}
	if !strings.HasPrefix(err.Error(), "unable to render map: ") {
		t.Errorf("error = %q, want render prefix", err)
	}
}

// TestApp_ExecuteMan verifies the man page names the subcommands.
func TestApp_ExecuteMan(t *testing.T) {
	app := newTestApp(t)

	var buf bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&buf)
	root.SetArgs([]string{"man"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("man failed: %v", err)
	}
	if !strings.Contains(buf.String(), "INETMAP") {
		t.Error("man page missing title")
	}
}
