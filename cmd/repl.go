package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leftmike/pika/repl"
)

var (
	replCmd = &cobra.Command{
		Use:   "repl",
		Short: "Render table references from an interactive console session",
		Args:  cobra.NoArgs,
		RunE:  replRun,
	}
)

func init() {
	pikaCmd.AddCommand(replCmd)
}

func replRun(cmd *cobra.Command, args []string) error {
	ses, err := newSession()
	if err != nil {
		return err
	}
	defer closeSession(ses)

	repl.Interact(ses)
	return nil
}
