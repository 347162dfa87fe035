package scenario_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/pkg/errors"
	"github.com/iwtcode/proteusAdapter/scenario"
	"github.com/stretchr/testify/require"
)

const jointDamping = `
label: Sim1
args: "-i ./Inputs -o ./Results -overwrite on"
verbose: false
batch: true
step: 0.0166666666666667
duration: 20
probes:
  - command: state
    object: cylinder
    count: 2
  - command: time
dampers:
  - object: cylinder
    coefficient: 10000
`

func TestParseJointDamping(t *testing.T) {
	sc, err := scenario.Parse([]byte(jointDamping))
	require.NoError(t, err)

	require.Equal(t, "Sim1", sc.Label)
	require.Equal(t, "-i ./Inputs -o ./Results -overwrite on", sc.Args)
	require.True(t, sc.Batch)
	require.Len(t, sc.Probes, 2)
	require.Equal(t, engine.State, sc.Probes[0].Cmd())
	require.Equal(t, 2, sc.Probes[0].Count)
	require.Equal(t, engine.Time, sc.Probes[1].Cmd())
	require.Equal(t, []scenario.Damper{{Object: "cylinder", Coefficient: 10000}}, sc.Dampers)
	require.Equal(t, 1200, sc.Steps())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(jointDamping), 0o644))

	sc, err := scenario.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Sim1", sc.Label)

	_, err = scenario.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseGeneratesLabel(t *testing.T) {
	sc, err := scenario.Parse([]byte("step: 0.1\nduration: 1\n"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(sc.Label, "sim-"))
	require.True(t, sc.Batch, "batch defaults to true")
	require.Equal(t, 10, sc.Steps())

	other, err := scenario.Parse([]byte("step: 0.1\n"))
	require.NoError(t, err)
	require.NotEqual(t, sc.Label, other.Label)
	require.Equal(t, 0, other.Steps())
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"zero step":       "step: 0\n",
		"negative step":   "step: -0.1\n",
		"infinite step":   "step: .inf\n",
		"nan duration":    "step: 0.1\nduration: .nan\n",
		"negative length": "step: 0.1\nduration: -1\n",
		"unknown command": "step: 0.1\nprobes:\n  - command: tension\n",
		"negative count":  "step: 0.1\nprobes:\n  - command: state\n    count: -2\n",
		"damper object":   "step: 0.1\ndampers:\n  - coefficient: 1\n",
		"damper inf":      "step: 0.1\ndampers:\n  - object: cyl\n    coefficient: .inf\n",
		"bad yaml":        "step: [\n",
		"too many steps":  "step: 1e-12\nduration: 1e10\n",
		"tiny step":       "step: 5e-324\nduration: 1\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(doc))
			require.ErrorIs(t, err, errors.ErrInvalidScenario)
		})
	}
}

func TestStepsStayInRange(t *testing.T) {
	sc, err := scenario.Parse([]byte("step: 1\nduration: 2147483647\n"))
	require.NoError(t, err)
	require.Equal(t, scenario.MaxSteps, sc.Steps())

	unchecked := &scenario.Scenario{Step: 1e-12, Duration: 1e10}
	require.Equal(t, scenario.MaxSteps, unchecked.Steps())

	unchecked = &scenario.Scenario{Step: math.NaN(), Duration: 1}
	require.Zero(t, unchecked.Steps())

	unchecked = &scenario.Scenario{Step: 0.1, Duration: math.Inf(1)}
	require.Equal(t, scenario.MaxSteps, unchecked.Steps())
}
