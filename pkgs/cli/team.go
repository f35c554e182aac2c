package cli

import (
	"fmt"
	"strconv"

	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewTeamCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "team NUMBER",
		Short: "Re-point the connection at the IP derived from a team number",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}

			team64, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid team number %q: %w", args[0], err)
			}

			return dsApp.SetTeamAction(uint32(team64))
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewAllianceCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "alliance red1|red2|red3|blue1|blue2|blue3",
		Short: "Change the advertised alliance and position",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.SetAllianceAction(args[0])
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewModeCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "mode teleop|test|auto",
		Short: "Change the operating mode advertised outbound",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.SetModeAction(args[0])
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}
