package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.dedis.ch/onet/v3/log"

	"github.com/ldsec/platedrift/utils"
)

const volcanoes = `0,0.4,name
0,0.0,Kilauea
220,2.1,Kauai
560,5.6,Nihoa
1000,10.2,Necker
,11.0,blank
1250,12.4,Gardner
2590,27.7,Midway
`

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log.SetDebugVisible(0)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--debug", "0"))
	err := cmd.Execute()
	return out.String(), err
}

func dataFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "volcanoes.csv")
	require.NoError(t, os.WriteFile(path, []byte(volcanoes), 0o644))
	return path
}

func TestAnalyzeCommand(t *testing.T) {
	out := t.TempDir()
	stdout, err := runCmd(t, "analyze", "--csv", dataFile(t), "--outdir", out, "--xlsx")
	require.NoError(t, err)

	var printed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &printed))
	require.Equal(t, 6.0, printed["n_samples"])
	require.Equal(t, true, printed["lstsq_matches"])
	require.Greater(t, printed["v_hat_km_per_myr"].(float64), 0.0)

	written, err := os.ReadFile(filepath.Join(out, "summary.json"))
	require.NoError(t, err)
	require.Equal(t, stdout, string(written))
	require.FileExists(t, filepath.Join(out, "fit.xlsx"))
}

func TestAnalyzeCommandFormats(t *testing.T) {
	data := dataFile(t)
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			out := t.TempDir()
			stdout, err := runCmd(t, "analyze", "--csv", data, "--outdir", out, "--format", format)
			require.NoError(t, err)
			require.Contains(t, stdout, "v_hat_km_per_myr")
			require.FileExists(t, filepath.Join(out, "summary."+format))
		})
	}

	_, err := runCmd(t, "analyze", "--csv", data, "--outdir", t.TempDir(), "--format", "xml")
	require.Error(t, err)
}

func TestAnalyzeCommandPretty(t *testing.T) {
	stdout, err := runCmd(t, "analyze", "--csv", dataFile(t), "--outdir", t.TempDir(), "--pretty")
	require.NoError(t, err)
	require.Contains(t, stdout, "v_hat_cm_per_year")
}

func TestAnalyzeCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "platedrift.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
csv = "`+dataFile(t)+`"
results_dir = "`+dir+`"
format = "yaml"
z = 2.0
`), 0o644))

	_, err := runCmd(t, "analyze", "--config", cfg)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "summary.yaml"))
}

func TestAnalyzeCommandMissingColumn(t *testing.T) {
	_, err := runCmd(t, "analyze", "--csv", dataFile(t), "--outdir", t.TempDir(), "--age_col", "age")
	require.ErrorIs(t, err, utils.ErrNoColumn)
}

func TestFiguresCommand(t *testing.T) {
	out := t.TempDir()
	_, err := runCmd(t, "figures", "--csv", dataFile(t), "--outdir", out, "--bins", "4", "--html")
	require.NoError(t, err)
	for _, name := range []string{
		utils.AgeDistanceFigure,
		utils.FitFigure,
		utils.ResidualsFigure,
		utils.ResidualHistFigure,
		"report.html",
	} {
		require.FileExists(t, filepath.Join(out, name))
	}
}

func TestAnalyzeCommandZOverridesLevel(t *testing.T) {
	stdout, err := runCmd(t, "analyze", "--csv", dataFile(t), "--outdir", t.TempDir(), "--level", "0.9", "--z", "2")
	require.NoError(t, err)

	var printed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &printed))
	require.Equal(t, 2.0, printed["ci_z"])
}
