package cutviz_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/fitstest"
	"github.com/skirt-tools/cutviz/pkg/cutviz"
)

const parameters = `<?xml version="1.0" encoding="UTF-8"?>
<skirt-simulation-hierarchy type="MonteCarloSimulation" format="9">
    <MonteCarloSimulation>
        <probeSystem type="ProbeSystem">
            <ProbeSystem>
                <probes type="Probe">
                    <DefaultMediaDensityCutsProbe probeName="dns"/>
                    <DefaultDustTemperatureCutsProbe probeName="tmp"/>
                </probes>
            </ProbeSystem>
        </probeSystem>
    </MonteCarloSimulation>
</skirt-simulation-hierarchy>
`

// testLogger captures messages for assertions.
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, fields ...cutviz.LogField) {}
func (l *testLogger) Warn(msg string, fields ...cutviz.LogField)  {}
func (l *testLogger) Error(msg string, fields ...cutviz.LogField) { l.log(msg) }
func (l *testLogger) Info(msg string, fields ...cutviz.LogField)  { l.log(msg) }

func (l *testLogger) log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *testLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func newOutputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "galaxy_parameters.xml"), []byte(parameters), 0o644))

	ramp := func(x, y int) float64 { return float64(1 + x*y) }
	for _, name := range []string{
		"galaxy_dns_dust_t_xy.fits",
		"galaxy_dns_dust_g_xy.fits",
		"galaxy_tmp_dust_T_xy.fits",
		"galaxy_tmp_dust_T_yz.fits",
	} {
		fitstest.Write(t, filepath.Join(dir, name), fitstest.Grid(6, 6, 1, "K", ramp))
	}
	return dir
}

func testConfig() cutviz.Config {
	cfg := cutviz.DefaultConfig()
	cfg.DPI = 20
	off := false
	cfg.Interactive = &off
	return cfg
}

func TestRun_SavesFigures(t *testing.T) {
	dir := newOutputDir(t)
	logger := &testLogger{}

	p, err := cutviz.New(testConfig(), cutviz.WithLogger(logger))
	require.NoError(t, err)
	defer p.Close()

	sims, err := cutviz.CreateSimulations(dir, "")
	require.NoError(t, err)
	require.Len(t, sims, 1)

	figs, err := p.Run(context.Background(), sims[0])
	require.NoError(t, err)
	require.Len(t, figs, 2)

	density := filepath.Join(dir, "galaxy_dns_dust_xy.pdf")
	temperature := filepath.Join(dir, "galaxy_tmp_dust_T.pdf")
	assert.Equal(t, density, figs[0].Path)
	assert.Equal(t, temperature, figs[1].Path)
	assert.FileExists(t, density)
	assert.FileExists(t, temperature)
	assert.Contains(t, logger.Messages(), "Created "+density)
}

func TestRun_Incremental(t *testing.T) {
	dir := newOutputDir(t)
	cfg := testConfig()
	cfg.Format = "png"
	cfg.Incremental = true
	cfg.LedgerPath = filepath.Join(dir, ".cutviz", "ledger.db")

	sim, err := cutviz.FromOutputDir(dir, "galaxy")
	require.NoError(t, err)

	p, err := cutviz.New(cfg)
	require.NoError(t, err)
	first, err := p.Run(context.Background(), sim, cutviz.MediaDensityCuts)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Skipped)
	require.NoError(t, p.Close())

	p, err = cutviz.New(cfg)
	require.NoError(t, err)
	defer p.Close()
	second, err := p.Run(context.Background(), sim, cutviz.MediaDensityCuts)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Skipped)
}

func TestRun_IncrementalRerendersOnSettingsChange(t *testing.T) {
	dir := newOutputDir(t)
	cfg := testConfig()
	cfg.Format = "png"
	cfg.Incremental = true
	cfg.LedgerPath = filepath.Join(dir, ".cutviz", "ledger.db")

	sim, err := cutviz.FromOutputDir(dir, "galaxy")
	require.NoError(t, err)

	run := func(cfg cutviz.Config) cutviz.Figure {
		t.Helper()
		p, err := cutviz.New(cfg)
		require.NoError(t, err)
		defer p.Close()
		figs, err := p.Run(context.Background(), sim, cutviz.MediaDensityCuts)
		require.NoError(t, err)
		require.Len(t, figs, 1)
		return figs[0]
	}

	assert.False(t, run(cfg).Skipped)

	changed := cfg
	changed.Decades = 1
	changed.DPI = cfg.DPI * 2
	fig := run(changed)
	assert.False(t, fig.Skipped, "figure skipped after decades and dpi changed")
	assert.NotNil(t, fig.Image)

	// The ledger now holds the new settings.
	assert.True(t, run(changed).Skipped)
	assert.False(t, run(cfg).Skipped)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := cutviz.DefaultConfig()
	cfg.Format = "gif"
	_, err := cutviz.New(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)

	cfg = cutviz.DefaultConfig()
	cfg.Incremental = true
	_, err = cutviz.New(cfg)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestSavePath(t *testing.T) {
	def := filepath.Join("/out", "galaxy_dns_dust_xy.pdf")

	got, err := cutviz.SavePath(def, cutviz.SaveSuffixes, cutviz.SaveOptions{})
	require.NoError(t, err)
	assert.Equal(t, def, got)

	outDir := t.TempDir()
	got, err = cutviz.SavePath(def, cutviz.SaveSuffixes, cutviz.SaveOptions{OutDirPath: outDir, OutFileName: "cut.PNG"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "cut.PNG"), got)

	_, err = cutviz.SavePath(def, cutviz.SaveSuffixes, cutviz.SaveOptions{OutFileName: "cut.svg"})
	assert.ErrorIs(t, err, cutviz.ErrUnsupportedSuffix)
}

func TestAbsolute(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := cutviz.Absolute("~/runs")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "runs"), got)

	wd, err := os.Getwd()
	require.NoError(t, err)
	got, err = cutviz.Absolute("plots")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "plots"), got)
}

func TestFromOutputDir_Missing(t *testing.T) {
	sim, err := cutviz.FromOutputDir(t.TempDir(), "nothing")
	assert.ErrorIs(t, err, domain.ErrNoSimulation)
	assert.Nil(t, sim)
}

// recordingPlugin remembers its lifecycle calls and replots once on start.
type recordingPlugin struct {
	mu       sync.Mutex
	calls    []string
	replot   error
	initErr  error
	prefixes []string
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) Initialize(ctx context.Context, cfg cutviz.PluginConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "init")
	if p.initErr != nil {
		return p.initErr
	}
	p.prefixes, _ = cfg.Prefixes()
	p.replot = cfg.Replot(ctx, "galaxy")
	return nil
}

func (p *recordingPlugin) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "shutdown")
	return nil
}

func TestStartStop_Plugins(t *testing.T) {
	dir := newOutputDir(t)
	plugin := &recordingPlugin{}

	p, err := cutviz.New(testConfig(), cutviz.WithPlugin(plugin))
	require.NoError(t, err)
	defer p.Close()

	require.NoError(t, p.Start(context.Background(), dir, cutviz.TemperatureCuts))
	assert.ErrorIs(t, p.Start(context.Background(), dir), domain.ErrAlreadyRunning)
	require.NoError(t, p.Stop())
	assert.ErrorIs(t, p.Stop(), domain.ErrNotRunning)

	assert.Equal(t, []string{"init", "shutdown"}, plugin.calls)
	assert.Equal(t, []string{"galaxy"}, plugin.prefixes)
	assert.NoError(t, plugin.replot)
	assert.FileExists(t, filepath.Join(dir, "galaxy_tmp_dust_T.pdf"))
	assert.NoFileExists(t, filepath.Join(dir, "galaxy_dns_dust_xy.pdf"))
}

func TestStart_PluginFailure(t *testing.T) {
	boom := errors.New("boom")
	p, err := cutviz.New(testConfig(), cutviz.WithPlugin(&recordingPlugin{initErr: boom}))
	require.NoError(t, err)
	defer p.Close()

	assert.ErrorIs(t, p.Start(context.Background(), t.TempDir()), boom)
	assert.ErrorIs(t, p.Stop(), domain.ErrNotRunning)
}
