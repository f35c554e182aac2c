package cli

import (
	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewConnectCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "connect",
		Short: "Establish the connection engine against the configured RIO",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.ConnectAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewStatusCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "status",
		Short: "Print the current connection and telemetry state",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.StatusAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}
