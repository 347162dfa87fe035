package fake

import (
	"testing"

	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/stretchr/testify/require"
)

func TestFailNextAppliesOnce(t *testing.T) {
	e := New()
	e.PutDoubles("Sim1", engine.CableLength, "c", 12)
	e.FailNext("boom")

	var v float64
	e.GetDouble("Sim1", engine.CableLength, "c", &v)
	require.Equal(t, 0.0, v)

	var msg string
	e.GetErrorMessage("Sim1", &msg)
	require.Equal(t, "boom", msg)

	e.GetDouble("Sim1", engine.CableLength, "c", &v)
	require.Equal(t, 12.0, v)
}

func TestInvalidCommandRecordsError(t *testing.T) {
	e := New()

	out := []float64{0, 0}
	e.GetDoubleArray("Sim1", engine.Command(500), "", out)
	require.Equal(t, []float64{0, 0}, out)

	var msg string
	e.GetErrorMessage("Sim1", &msg)
	require.Contains(t, msg, "unknown command 500")
}

func TestAdvanceTimeRequiresRunningSimulation(t *testing.T) {
	e := New()
	e.AdvanceTime("Sim1", 1)
	require.Equal(t, 0.0, e.SimTime("Sim1"))

	require.True(t, e.Initialize("Sim1", "", false, true))
	e.AdvanceTime("Sim1", 0.25)
	e.AdvanceTime("Sim1", 0.25)
	require.Equal(t, 0.5, e.SimTime("Sim1"))
	require.True(t, e.Running("Sim1"))

	e.Close("Sim1")
	require.False(t, e.Running("Sim1"))
}

func TestSetThenGetRoundTrip(t *testing.T) {
	e := New()
	e.SetDoubleArray("Sim1", engine.RigidBodyJointForceAndDeriv, "cyl", []float64{-5, 0})
	e.SetString("Sim1", engine.OutputRestartPath, "", "restart")

	out := make([]float64, 3)
	e.GetDoubleArray("Sim1", engine.RigidBodyJointForceAndDeriv, "cyl", out)
	require.Equal(t, []float64{-5, 0, 0}, out)

	var s string
	e.GetString("Sim1", engine.OutputRestartPath, "", &s)
	require.Equal(t, "restart", s)
}
