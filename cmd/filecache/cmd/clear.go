package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all items",
	Long:  "Remove every item from the cache file. The file itself is kept.",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) (err error) {
	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	n := c.Store().Len()
	c.Store().Clear()

	if err := saveCache(c); err != nil {
		return fmt.Errorf("clear failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Removed %d items\n", n)
	return nil
}
