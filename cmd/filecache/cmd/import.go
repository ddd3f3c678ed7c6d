package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from CSV",
	Long:  "Add items from a CSV file (id,title[,done] per line) to the cache file. Unreadable lines are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) (err error) {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	res, err := c.ImportCSV(f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	for _, e := range res.Errors {
		logger.Warn("skipped line", "line", e.Index+1, "err", e.Err)
	}

	if err := saveCache(c); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d items (%d skipped)\n", res.Count, res.Skipped)
	return nil
}
