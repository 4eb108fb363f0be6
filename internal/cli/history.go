package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"themepark/internal/domain/entities"
	"themepark/internal/history"
)

func newHistoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Work with ride history CSV files",
	}

	cmd.AddCommand(newHistoryInspectCmd(opts))

	return cmd
}

func newHistoryInspectCmd(opts *options) *cobra.Command {
	var sorted bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Load a history CSV and show its visitors",
		Long: `Inspect reads a history CSV into a scratch ride, exactly as an import
would, and prints the visitors it contains together with the import report.
Malformed lines are listed as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			ride := entities.NewRide("inspect", filepath.Base(path), nil, entities.DefaultMaxRider)
			report, err := history.Import(ride, path)
			if err != nil {
				return err
			}
			if sorted && ride.HistorySize() > 0 {
				if err := ride.SortHistoryDefault(); err != nil {
					return err
				}
			}

			opts.out(cmd.OutOrStdout()).Print(InspectResult{
				File:     path,
				Sorted:   sorted,
				Report:   report,
				Visitors: ride.History(),
			})
			return nil
		},
	}

	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort visitors by name, age, then membership")

	return cmd
}
