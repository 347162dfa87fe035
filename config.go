package proteus

import (
	"math"
	"os"
	"strconv"
)

// Config хранит модель конфигурации приложения
type Config struct {
	Label    string
	Args     string
	Verbose  bool
	Batch    bool
	Step     float64
	Duration float64
	DBPath   string
	LogLevel string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	label := os.Getenv("PDS_LABEL")

	args := os.Getenv("PDS_ARGS")
	if args == "" {
		args = "-i ./Inputs -o ./Results -overwrite on"
	}

	verbose, err := strconv.ParseBool(os.Getenv("PDS_VERBOSE"))
	if err != nil {
		verbose = false
	}

	batch, err := strconv.ParseBool(os.Getenv("PDS_BATCH"))
	if err != nil {
		batch = true
	}

	step, err := strconv.ParseFloat(os.Getenv("PDS_STEP"), 64)
	if err != nil || !finite(step) || step <= 0 {
		step = 1.0 / 60.0
	}

	duration, err := strconv.ParseFloat(os.Getenv("PDS_DURATION"), 64)
	if err != nil || !finite(duration) || duration < 0 {
		duration = 20
	}

	dbPath := os.Getenv("PDS_DB_PATH")

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		Label:    label,
		Args:     args,
		Verbose:  verbose,
		Batch:    batch,
		Step:     step,
		Duration: duration,
		DBPath:   dbPath,
		LogLevel: logLevel,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
