package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leftmike/pika/sql"
)

func init() {
	pikaCmd.AddCommand(
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number of Pika",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Println(sql.Version())
			},
		})
}
