package cli

import (
	"github.com/keskad/ds/pkgs/app"
	"github.com/spf13/cobra"
)

func NewMatchCommand(dsApp *app.DSApp) *cobra.Command {
	type Args struct {
		Competition string
		MatchType   string
		GameData    string
	}

	cmdArgs := Args{}
	command := &cobra.Command{
		Use:   "match",
		Short: "Send match metadata over the TCP session",
		Long: `Builds and queues a MatchInfo TCP tag, and a GameData tag when a
game-specific message is supplied. Any flag left unset falls back to the
optional .ds-match.yaml sidecar, when present.`,
		RunE: func(command *cobra.Command, args []string) error {
			if err := dsApp.Initialize(); err != nil {
				return err
			}
			return dsApp.MatchAction(cmdArgs.Competition, cmdArgs.MatchType, cmdArgs.GameData)
		},
	}

	command.Flags().BoolVarP(&dsApp.Debug, "debug", "v", false, "Increase verbosity to the debug level")
	command.Flags().StringVarP(&cmdArgs.Competition, "competition", "c", "", "Competition name")
	command.Flags().StringVarP(&cmdArgs.MatchType, "type", "t", "", "Match type: none, practice, qual, or elim")
	command.Flags().StringVarP(&cmdArgs.GameData, "game-data", "g", "", "Game-specific message")

	return command
}
