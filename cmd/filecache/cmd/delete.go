package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aweris/filecache"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Long:    "Delete an item from the cache file and print it.",
	Args:    cobra.ExactArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) (err error) {
	id := args[0]

	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	item, ok := c.Store().Delete(id)
	if !ok {
		return fmt.Errorf("%w: %s", filecache.ErrNotFound, id)
	}

	if err := saveCache(c); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", item.ID(), item.Title)
	return nil
}
