package proteus_test

import (
	"testing"

	proteus "github.com/iwtcode/proteusAdapter"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PDS_LABEL", "PDS_ARGS", "PDS_VERBOSE", "PDS_BATCH", "PDS_STEP", "PDS_DURATION", "PDS_DB_PATH", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := proteus.Load()
	require.Equal(t, "", cfg.Label)
	require.Equal(t, "-i ./Inputs -o ./Results -overwrite on", cfg.Args)
	require.False(t, cfg.Verbose)
	require.True(t, cfg.Batch)
	require.InDelta(t, 1.0/60.0, cfg.Step, 1e-12)
	require.Equal(t, 20.0, cfg.Duration)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PDS_LABEL", "Sim7")
	t.Setenv("PDS_ARGS", "-i ./In")
	t.Setenv("PDS_VERBOSE", "true")
	t.Setenv("PDS_BATCH", "false")
	t.Setenv("PDS_STEP", "0.01")
	t.Setenv("PDS_DURATION", "5")
	t.Setenv("PDS_DB_PATH", "/tmp/run.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := proteus.Load()
	require.Equal(t, "Sim7", cfg.Label)
	require.Equal(t, "-i ./In", cfg.Args)
	require.True(t, cfg.Verbose)
	require.False(t, cfg.Batch)
	require.Equal(t, 0.01, cfg.Step)
	require.Equal(t, 5.0, cfg.Duration)
	require.Equal(t, "/tmp/run.db", cfg.DBPath)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadStep(t *testing.T) {
	t.Setenv("PDS_STEP", "-1")
	t.Setenv("PDS_DURATION", "abc")

	cfg := proteus.Load()
	require.InDelta(t, 1.0/60.0, cfg.Step, 1e-12)
	require.Equal(t, 20.0, cfg.Duration)
}

func TestNewLoggerOff(t *testing.T) {
	logger := proteus.NewLogger("off")
	require.NotNil(t, logger)

	logger = proteus.NewLogger("not-a-level")
	require.Equal(t, "info", logger.GetLevel().String())
}

func TestLoadRejectsNonFiniteNumbers(t *testing.T) {
	for _, value := range []string{"NaN", "Inf", "-Inf", "+Inf"} {
		t.Setenv("PDS_STEP", value)
		t.Setenv("PDS_DURATION", value)

		cfg := proteus.Load()
		require.InDelta(t, 1.0/60.0, cfg.Step, 1e-12, value)
		require.Equal(t, 20.0, cfg.Duration, value)
	}
}
