package cli

import (
	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewEnableCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "enable",
		Short: "Request the robot move to the enabled state",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.EnableAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewDisableCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "disable",
		Short: "Request the robot move to the disabled state",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.DisableAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}

func NewEstopCommand(dsApp *app.DSApp) *cobra.Command {
	command := &cobra.Command{
		Use:   "estop",
		Short: "Latch the emergency stop",
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.EstopAction()
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	return command
}
