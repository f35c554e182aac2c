package cli

import (
	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewRestartCodeCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "restart-code",
		Short: "Request the RIO restart the robot program",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.RestartCodeAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewRestartRoboRIOCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "restart-rio",
		Short: "Request the RIO reboot entirely",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.RestartRoboRIOAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}
