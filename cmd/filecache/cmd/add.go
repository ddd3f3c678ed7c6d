package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aweris/filecache/internal/todo"
)

var addCmd = &cobra.Command{
	Use:   "add <id> <title...>",
	Short: "Add or replace an item",
	Long:  "Add an item to the cache file. An existing item with the same id is replaced.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().Bool("done", false, "mark the item as done")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) (err error) {
	done, err := cmd.Flags().GetBool("done")
	if err != nil {
		return err
	}

	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	item := todo.New(args[0], strings.Join(args[1:], " "), done)
	c.Store().Add(item)

	if err := saveCache(c); err != nil {
		return fmt.Errorf("add failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Added %s\n", item.ID())
	return nil
}
