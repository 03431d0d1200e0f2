package chiclet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/chiclet/internal/core/config"
	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/data/db"
)

func testConfig(t *testing.T, pageSize int) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Data.PageSize = pageSize
	return &cfg
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func openTestApp(t *testing.T, cfg *config.Config, dataFile string) *App {
	t.Helper()
	app, err := Open(context.Background(), cfg, dataFile)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestOpen_LoadAndConvert(t *testing.T) {
	ctx := context.Background()
	app := openTestApp(t, testConfig(t, 0), copyFixture(t, "fruit.yaml"))

	view, err := app.Slicer.Load(ctx)
	require.NoError(t, err)

	res, err := app.Slicer.Convert(view, "")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.Points.Len())
	assert.Equal(t, 2, res.Settings.General.Columns)
	assert.Equal(t, "Fruit", res.CategorySourceName)
}

func TestService_ConvertNothingToRender(t *testing.T) {
	app := openTestApp(t, testConfig(t, 0), copyFixture(t, "fruit.yaml"))

	res, err := app.Slicer.Convert(nil, "")
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestService_SearchTextRoundTrip(t *testing.T) {
	ctx := context.Background()
	app := openTestApp(t, testConfig(t, 0), copyFixture(t, "fruit.yaml"))

	app.Slicer.SaveSearch(ctx, "an")

	view, err := app.Slicer.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "an", SearchText(view))

	res, err := app.Slicer.Convert(view, SearchText(view))
	require.NoError(t, err)

	var visible []string
	for _, dp := range res.Points.Points() {
		if !dp.Filtered {
			visible = append(visible, dp.Category)
		}
	}
	assert.Equal(t, []string{"Banana"}, visible)
}

func TestService_SavedSelectionDrivesOverride(t *testing.T) {
	ctx := context.Background()
	app := openTestApp(t, testConfig(t, 2), copyFixture(t, "fruit.yaml"))

	view, err := app.Slicer.Load(ctx)
	require.NoError(t, err)

	app.Slicer.SaveSelection(ctx, view, []identity.ID{"cherry", "date"})

	view, err = app.Slicer.Load(ctx)
	require.NoError(t, err)
	assert.True(t, view.Metadata.Segment, "first page of two rows")

	res, err := app.Slicer.Convert(view, "")
	require.NoError(t, err)
	assert.True(t, res.HasSelectionOverride, "filter names rows not loaded yet")
	assert.Equal(t, `["cherry","date"]`, res.Settings.General.Selection)

	view, err = app.Slicer.LoadMore(ctx)
	require.NoError(t, err)
	assert.False(t, view.Metadata.Segment)
	assert.Equal(t, 4, view.Category().Len())
}

func TestOpen_ScopesByDataFile(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, 0)

	first := openTestApp(t, cfg, copyFixture(t, "fruit.yaml"))
	_, err := first.Selection.Select(ctx, []identity.ID{"apple"}, false)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestApp(t, cfg, copyFixture(t, "fruit.yaml"))
	assert.NotEqual(t, first.Scope, second.Scope)
	assert.False(t, second.Selection.HasSelection())
}

func TestOpen_NoDataFile(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, 0), "")
	assert.ErrorContains(t, err, "no data file")
}

func TestOpenDB_RecoversFromCorruption(t *testing.T) {
	cfg := testConfig(t, 0)
	require.NoError(t, os.WriteFile(db.Path(cfg.DataDir), []byte("definitely not sqlite, just bytes"), 0o644))

	database, err := OpenDB(cfg)
	require.NoError(t, err)
	_ = database.Close()

	matches, err := filepath.Glob(filepath.Join(cfg.DataDir, db.FileName+".corrupt.*"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}
