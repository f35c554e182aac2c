package cli

import (
	"errors"

	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewRootCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "ds",
		Short: "Driver-station client for a roboRIO-based robot controller",
		RunE: func(command *cobra.Command, args []string) error {
			return errors.New("please select a command")
		},
	}

	command.AddCommand(NewConnectCommand(dsApp))
	command.AddCommand(NewEnableCommand(dsApp))
	command.AddCommand(NewDisableCommand(dsApp))
	command.AddCommand(NewEstopCommand(dsApp))
	command.AddCommand(NewTeamCommand(dsApp))
	command.AddCommand(NewAllianceCommand(dsApp))
	command.AddCommand(NewModeCommand(dsApp))
	command.AddCommand(NewRestartCodeCommand(dsApp))
	command.AddCommand(NewRestartRoboRIOCommand(dsApp))
	command.AddCommand(NewMatchCommand(dsApp))
	command.AddCommand(NewStatusCommand(dsApp))

	return command
}
