package recorder_test

import (
	"context"
	"path/filepath"
	"testing"

	proteus "github.com/iwtcode/proteusAdapter"
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/engine/fake"
	"github.com/iwtcode/proteusAdapter/models"
	"github.com/iwtcode/proteusAdapter/recorder"
	"github.com/iwtcode/proteusAdapter/runner"
	"github.com/iwtcode/proteusAdapter/scenario"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) *recorder.Recorder {
	t.Helper()

	rec, err := recorder.Open(filepath.Join(t.TempDir(), "runs", "proteus.db"))
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestWriteRequiresRun(t *testing.T) {
	rec := setupTest(t)

	err := rec.Write(&models.StepResult{Label: "Sim1"})
	require.Error(t, err)
}

func TestWriteAndQuery(t *testing.T) {
	rec := setupTest(t)

	runID, err := rec.BeginRun("Sim1")
	require.NoError(t, err)
	require.NotZero(t, runID)

	for step := 0; step < 3; step++ {
		tm := float64(step) * 0.5
		require.NoError(t, rec.Write(&models.StepResult{
			Label: "Sim1",
			Step:  step,
			Time:  tm,
			Samples: []models.Sample{
				{Label: "Sim1", Time: tm, Command: "state", Object: "cylinder", Values: []float64{float64(step), -1}},
			},
			Dampers: []models.DamperState{
				{Object: "cylinder", Velocity: float64(step), Position: -1, Force: -10 * float64(step)},
			},
		}))
	}

	velocity, err := rec.Series(runID, "state", "cylinder", 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 2}, velocity)

	position, err := rec.Series(runID, "state", "cylinder", 1)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, -1, -1}, position)

	forces, err := rec.Forces(runID, "cylinder")
	require.NoError(t, err)
	require.Equal(t, []float64{0, -10, -20}, forces)

	missing, err := rec.Series(runID, "time", "", 0)
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestRunsAreSeparated(t *testing.T) {
	rec := setupTest(t)

	first, err := rec.BeginRun("Sim1")
	require.NoError(t, err)
	require.NoError(t, rec.Write(&models.StepResult{Samples: []models.Sample{{Command: "time", Values: []float64{1}}}}))

	second, err := rec.BeginRun("Sim2")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.NoError(t, rec.Write(&models.StepResult{Samples: []models.Sample{{Command: "time", Values: []float64{2}}}}))

	values, err := rec.Series(first, "time", "", 0)
	require.NoError(t, err)
	require.Equal(t, []float64{1}, values)

	values, err = rec.Series(second, "time", "", 0)
	require.NoError(t, err)
	require.Equal(t, []float64{2}, values)
}

func TestRecordsRunnerOutput(t *testing.T) {
	rec := setupTest(t)

	sc, err := scenario.Parse([]byte(`
label: Sim1
step: 0.25
duration: 1
probes:
  - {command: time}
dampers:
  - {object: cylinder, coefficient: 100}
`))
	require.NoError(t, err)

	eng := fake.New()
	eng.PutDoubles("Sim1", engine.State, "cylinder", 0.5, 0)
	c, err := proteus.New(&proteus.Config{LogLevel: "off"}, eng)
	require.NoError(t, err)

	runID, err := rec.BeginRun(sc.Label)
	require.NoError(t, err)

	summary, err := runner.New(c, sc).Run(context.Background(), rec)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Steps)

	times, err := rec.Series(runID, "time", "", 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.25, 0.5, 0.75}, times)

	forces, err := rec.Forces(runID, "cylinder")
	require.NoError(t, err)
	require.Equal(t, []float64{-50, -50, -50, -50}, forces)
}

func TestCloseIsIdempotent(t *testing.T) {
	rec, err := recorder.Open(filepath.Join(t.TempDir(), "proteus.db"))
	require.NoError(t, err)
	require.Equal(t, "proteus.db", filepath.Base(rec.Path()))

	require.NoError(t, rec.Close())
	require.NoError(t, rec.Close())
}
