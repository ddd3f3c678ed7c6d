package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export items as CSV",
	Long:  "Write every item as a CSV line (id,title,done) to a file, or to stdout.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) (err error) {
	c, err := loadCache()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var w io.Writer = cmd.OutOrStdout()
	if len(args) == 1 {
		f, ferr := os.Create(args[0])
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		w = f
	}

	res, err := c.ExportCSV(w)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Debug("exported", "items", res.Count)
	return nil
}
