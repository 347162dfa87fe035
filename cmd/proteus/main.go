// Package main - CLI для прогона симуляций ProteusDS через адаптер.
package main

import (
	"fmt"
	"log"
	"os"

	proteus "github.com/iwtcode/proteusAdapter"
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/engine/fake"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile string
	dryRun  bool
	cfg     *proteus.Config
)

var rootCmd = &cobra.Command{
	Use:   "proteus",
	Short: "Run and inspect ProteusDS simulations",
	Long: `proteus drives the ProteusDS simulation engine through the Go adapter.

Subcommands:
  run       - run a scenario file step by step
  commands  - list the attribute command table
  dobjects  - list the DObjects of a simulation
  version   - print the engine version`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Warning: Could not load %s file. Using default values or environment variables: %v", envFile, err)
		}
		cfg = proteus.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to .env file")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "use the in-memory engine instead of libProteusDSAPI (the only engine without -tags proteusds)")

	rootCmd.AddCommand(runCmd, commandsCmd, dobjectsCmd, versionCmd)
}

// newClient создает клиент поверх нативного движка или фейкового при --dry-run.
func newClient() (*proteus.Client, error) {
	var eng engine.Engine
	if dryRun {
		eng = fake.New()
	} else {
		nativeEngine, err := newNativeEngine()
		if err != nil {
			return nil, fmt.Errorf("failed to load ProteusDS engine: %w", err)
		}
		eng = nativeEngine
	}
	return proteus.New(cfg, eng)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
