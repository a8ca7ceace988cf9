package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newIDsCmd(a *app) *cobra.Command {
	var (
		withFreqs bool
		remove    []int
	)
	cmd := &cobra.Command{
		Use:   "ids",
		Short: "List indexed document ids in ascending order",
		Long: `List indexed document ids in ascending order. Ids given with --remove
are removed first, using the selected execution mode.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, id := range remove {
				a.server.RemoveDocument(a.mode, id)
			}
			out := cmd.OutOrStdout()
			for id := range a.server.DocumentIDs() {
				if !withFreqs {
					fmt.Fprintln(out, id)
					continue
				}
				freqs := a.server.GetWordFrequencies(id)
				words := make([]string, 0, len(freqs))
				for w := range freqs {
					words = append(words, w)
				}
				slices.Sort(words)
				parts := make([]string, len(words))
				for i, w := range words {
					parts[i] = fmt.Sprintf("%s=%.6f", w, freqs[w])
				}
				fmt.Fprintf(out, "%d %s\n", id, strings.Join(parts, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withFreqs, "freqs", false, "print term frequencies for each document")
	cmd.Flags().IntSliceVar(&remove, "remove", nil, "document ids to remove before listing")
	return cmd
}
