package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirt-tools/cutviz/internal/domain"
)

const skiDoc = `<?xml version="1.0" encoding="UTF-8"?>
<skirt-simulation-hierarchy type="MonteCarloSimulation" format="9">
    <MonteCarloSimulation userLevel="Regular" simulationMode="DustEmission" numPackets="1e6">
        <probeSystem type="ProbeSystem">
            <ProbeSystem>
                <probes type="Probe">
                    <DefaultMediaDensityCutsProbe probeName="dns"/>
                    <DefaultDustTemperatureCutsProbe probeName="tmp">
                        <form type="Form"><DefaultCutsForm/></form>
                    </DefaultDustTemperatureCutsProbe>
                    <ConvergenceInfoProbe probeName="cnv" wavelength="0.55 micron"/>
                </probes>
            </ProbeSystem>
        </probeSystem>
    </MonteCarloSimulation>
</skirt-simulation-hierarchy>
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseProbes(t *testing.T) {
	decls, err := parseProbes(strings.NewReader(skiDoc))
	require.NoError(t, err)

	assert.Equal(t, []probeDecl{
		{typ: "DefaultMediaDensityCutsProbe", name: "dns"},
		{typ: "DefaultDustTemperatureCutsProbe", name: "tmp"},
		{typ: "ConvergenceInfoProbe", name: "cnv"},
	}, decls)
}

func TestParseProbes_Malformed(t *testing.T) {
	_, err := parseProbes(strings.NewReader("<a><probes></a>"))
	assert.Error(t, err)
}

func TestOpenSimulation(t *testing.T) {
	dir := t.TempDir()
	ski := filepath.Join(dir, "galaxy.ski")
	writeFile(t, ski, skiDoc)

	sim, err := OpenSimulation(ski, filepath.Join(dir, "out"))
	require.NoError(t, err)

	assert.Equal(t, "galaxy", sim.Prefix())
	assert.Equal(t, ski, sim.SkiFilePath())
	assert.Equal(t, filepath.Join(dir, "out", "galaxy_dns_dust_xy.pdf"), sim.OutFilePath("dns_dust_xy.pdf"))

	probes := sim.Probes()
	require.Len(t, probes, 3)
	assert.Equal(t, "DefaultMediaDensityCutsProbe", probes[0].Type())
	assert.Equal(t, "dns", probes[0].Name())
}

func TestOpenSimulation_BadName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "galaxy.xml")
	writeFile(t, path, skiDoc)

	_, err := OpenSimulation(path, dir)
	assert.Error(t, err)
}

func TestProbe_OutFilePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "run"+ParametersSuffix), skiDoc)
	for _, name := range []string{
		"run_tmp_dust_T_yz.fits",
		"run_tmp_dust_T_xy.fits",
		"run_tmp_dust_T_xz.fits",
		"run_tmp_gas_T_xy.fits",
		"other_tmp_dust_T_xy.fits",
	} {
		writeFile(t, filepath.Join(dir, name), "x")
	}

	sim, err := FromOutputDir(dir, "run")
	require.NoError(t, err)

	var tmp = sim.Probes()[1]
	paths, err := tmp.OutFilePaths("dust_T_*.fits")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "run_tmp_dust_T_xy.fits"),
		filepath.Join(dir, "run_tmp_dust_T_xz.fits"),
		filepath.Join(dir, "run_tmp_dust_T_yz.fits"),
	}, paths)

	paths, err = sim.Probes()[0].OutFilePaths("dust_t_xy.fits")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCreateSimulations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b"+ParametersSuffix), skiDoc)
	writeFile(t, filepath.Join(dir, "a"+ParametersSuffix), skiDoc)
	writeFile(t, filepath.Join(dir, "a_log.txt"), "log")

	sims, err := CreateSimulations(dir, "")
	require.NoError(t, err)
	require.Len(t, sims, 2)
	assert.Equal(t, "a", sims[0].Prefix())
	assert.Equal(t, "b", sims[1].Prefix())

	sims, err = CreateSimulations(dir, "b")
	require.NoError(t, err)
	require.Len(t, sims, 1)
	assert.Equal(t, "b", sims[0].Prefix())

	_, err = CreateSimulations(dir, "c")
	assert.ErrorIs(t, err, domain.ErrNoSimulation)

	_, err = CreateSimulations(t.TempDir(), "")
	assert.ErrorIs(t, err, domain.ErrNoSimulation)
}
