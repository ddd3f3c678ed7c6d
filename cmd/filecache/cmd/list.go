package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached items",
	Long:  "List all items in the cache file, ordered by id.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) (err error) {
	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	out := cmd.OutOrStdout()
	count := 0
	for id, item := range c.Store().Items() {
		mark := " "
		if item.Done {
			mark = "x"
		}
		fmt.Fprintf(out, "%s\t[%s]\t%s\n", id, mark, item.Title)
		count++
	}

	if count == 0 {
		fmt.Fprintln(out, "(no entries)")
	}

	return nil
}
