package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jaminalder/codex-gomoku/internal/term"
)

// gomoku play
func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a hot-seat game in the terminal",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game on the terminal. Enter a move as a
			coordinate such as h8 (column a-o, row 1-15) or as two
			0-based numbers "row col". Type help for the other commands.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return term.NewSession(cmd.InOrStdin(), cmd.OutOrStdout(), logrus.StandardLogger()).Run()
		},
	}
}
