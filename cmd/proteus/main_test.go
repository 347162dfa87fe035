package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwtcode/proteusAdapter/engine/fake"
	"github.com/iwtcode/proteusAdapter/recorder"
	"github.com/stretchr/testify/require"
)

// execute запускает CLI с чистыми значениями флагов и возвращает вывод.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "off")

	envFile, dryRun = ".env", false
	scenarioPath, dbPath = "", ""
	simLabel, simArgs, groupFilter = "", "", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "missing.env")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDryRunVersion(t *testing.T) {
	out, err := execute(t, "--dry-run", "version")
	require.NoError(t, err)
	require.Contains(t, out, fake.Version)
}

func TestDryRunDObjects(t *testing.T) {
	out, err := execute(t, "--dry-run", "dobjects", "--label", "Sim1")
	require.NoError(t, err)
	require.Contains(t, out, "DObjects in the simulation are:")
}

func TestDryRunScenarioIsRecorded(t *testing.T) {
	dir := t.TempDir()
	scenarioFile := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(scenarioFile, []byte(`
label: Sim1
step: 0.25
duration: 1
probes:
  - {command: time}
dampers:
  - {object: cylinder, coefficient: 10000}
`), 0o644))
	db := filepath.Join(dir, "runs.db")

	_, err := execute(t, "--dry-run", "run", "-s", scenarioFile, "--db", db)
	require.NoError(t, err)

	rec, err := recorder.Open(db)
	require.NoError(t, err)
	defer rec.Close()

	times, err := rec.Series(1, "time", "", 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75}, times)

	forces, err := rec.Forces(1, "cylinder")
	require.NoError(t, err)
	require.Len(t, forces, 4)
}

func TestCommandsGroupFilter(t *testing.T) {
	out, err := execute(t, "commands", "--group", "cable")
	require.NoError(t, err)
	require.Contains(t, out, "cableLength")
	require.NotContains(t, out, "rigidBodyPosition")
}
