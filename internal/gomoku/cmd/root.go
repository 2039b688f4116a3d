package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jaminalder/codex-gomoku/internal/config"
)

// Version is printed by --version.
var Version = "v0.1.0"

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:   "gomoku",
		Short: "Play five-in-a-row on a 15x15 board",
		Long: heredoc.Doc(`gomoku is a hot-seat five-in-a-row game. Black moves first
			and the players alternate placing stones on a 15x15 board.
			Five or more stones of one colour in an unbroken horizontal,
			vertical or diagonal line win; a full board is a draw.

			Use "gomoku play" to play in the terminal or "gomoku serve"
			to play in the browser.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// If --trace flag is provided it wins over LOG_LEVEL.
			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
				return nil
			}
			level, err := config.LoadLogLevel()
			if err != nil {
				return err
			}
			if level != nil {
				logrus.SetLevel(*level)
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().BoolP("help", "h", false, "Show help information")
	root.PersistentFlags().BoolP("version", "v", false, "Show the gomoku version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show trace information")

	root.SetVersionTemplate(Version + "\n")
	root.Version = Version

	root.AddCommand(Serve())
	root.AddCommand(Play())

	return root
}
