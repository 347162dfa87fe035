package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iwtcode/proteusAdapter/models"
	"github.com/iwtcode/proteusAdapter/recorder"
	"github.com/iwtcode/proteusAdapter/runner"
	"github.com/iwtcode/proteusAdapter/scenario"
	"github.com/spf13/cobra"
)

var (
	scenarioPath string
	dbPath       string
)

// runCmd выполняет сценарий
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario step by step",
	Long: `Initialize a simulation, step it for the scenario duration while reading
probes and applying dampers, then close it.

Without --scenario the run is built from PDS_* environment variables.`,
	RunE: runScenario,
}

func init() {
	runCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to scenario YAML file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite file to record samples into (default $PDS_DB_PATH)")
}

// scenarioFromConfig собирает сценарий из переменных окружения.
func scenarioFromConfig() (*scenario.Scenario, error) {
	sc := &scenario.Scenario{
		Label:    cfg.Label,
		Args:     cfg.Args,
		Verbose:  cfg.Verbose,
		Batch:    cfg.Batch,
		Step:     cfg.Step,
		Duration: cfg.Duration,
		Probes:   []scenario.Probe{{Command: "time"}},
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	var (
		sc  *scenario.Scenario
		err error
	)
	if scenarioPath != "" {
		sc, err = scenario.Load(scenarioPath)
	} else {
		sc, err = scenarioFromConfig()
	}
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	logger := client.GetLogger()

	if dbPath == "" {
		dbPath = cfg.DBPath
	}

	var sink runner.Sink
	if dbPath != "" {
		rec, err := recorder.Open(dbPath)
		if err != nil {
			return err
		}
		defer rec.Close()

		runID, err := rec.BeginRun(sc.Label)
		if err != nil {
			return err
		}
		logger.Infof("Запись прогона #%d в %s", runID, rec.Path())
		sink = rec
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.New(client, sc).Run(ctx, sink)
	if summary != nil {
		summary.RecordedTo = dbPath
		printSummary(summary)
	}
	return err
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func printSummary(s *models.RunSummary) {
	fmt.Println(titleStyle.Render("Run summary"))
	line := func(key string, value any) {
		fmt.Println(keyStyle.Render(key) + fmt.Sprint(value))
	}
	line("label", s.Label)
	line("steps", s.Steps)
	line("final time", fmt.Sprintf("%.3f s", s.FinalTime))
	line("samples", s.Samples)
	line("dobjects", len(s.DObjects))
	line("wall time", s.WallTime.Round(time.Millisecond))
	if s.RecordedTo != "" {
		line("recorded to", s.RecordedTo)
	}
	if s.Warnings > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d engine warning(s), see log", s.Warnings)))
	}
}
