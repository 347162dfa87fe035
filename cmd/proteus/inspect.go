package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	proteus "github.com/iwtcode/proteusAdapter"
	"github.com/iwtcode/proteusAdapter/engine"
	"github.com/iwtcode/proteusAdapter/scenario"
	"github.com/spf13/cobra"
)

var (
	groupFilter string
	simLabel    string
	simArgs     string
)

// commandsCmd выводит таблицу кодов атрибутов
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the attribute command table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rows := make([][]string, 0, len(engine.Commands()))
		for _, c := range engine.Commands() {
			if groupFilter != "" && c.Group() != groupFilter {
				continue
			}
			rows = append(rows, []string{strconv.Itoa(int(c)), c.String(), c.Group()})
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("VALUE", "NAME", "GROUP").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})

		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

// withSimulation инициализирует симуляцию, выполняет fn и закрывает ее.
// После fn проверяется канал ошибок движка.
func withSimulation(fn func(client *proteus.Client, label string) error) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	label := firstNonEmpty(simLabel, cfg.Label, scenario.NewLabel())
	if err := client.Initialize(label, firstNonEmpty(simArgs, cfg.Args), proteus.InitOptions{Verbose: cfg.Verbose, Batch: cfg.Batch}); err != nil {
		return err
	}
	defer client.Close(label)

	if err := fn(client, label); err != nil {
		return err
	}
	return client.LastError(label)
}

var dobjectsCmd = &cobra.Command{
	Use:   "dobjects",
	Short: "Initialize a simulation, list its DObjects and close it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSimulation(func(client *proteus.Client, label string) error {
			if err := client.AdvanceTime(label, 0); err != nil {
				return err
			}

			objects, err := client.DObjects(label)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "DObjects in the simulation are:")
			for _, o := range objects {
				fmt.Fprintf(out, "\t%s\t%s\n", o.Type, o.Name)
			}
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Initialize a simulation and print the engine version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSimulation(func(client *proteus.Client, label string) error {
			fmt.Fprintln(cmd.OutOrStdout(), client.GetString(label, engine.Version, ""))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{dobjectsCmd, versionCmd} {
		c.Flags().StringVar(&simLabel, "label", "", "simulation label (default $PDS_LABEL or a generated one)")
		c.Flags().StringVar(&simArgs, "args", "", "engine command line (default $PDS_ARGS)")
	}
	commandsCmd.Flags().StringVar(&groupFilter, "group", "", "only list commands of this group (general, simulation, environment, cable, rigid_body, rao, dcable_controller)")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
