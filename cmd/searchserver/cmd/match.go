package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd(a *app) *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "match QUERY",
		Short: "List the query words found in one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words, status, err := a.server.MatchDocument(a.mode, args[0], id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "{ document_id = %d, status = %s, words = [%s] }\n",
				id, status, strings.Join(words, " "))
			return nil
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "document id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
