package export

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"transcript-sheets/internal/app/converter/export"
	"transcript-sheets/internal/config"
)

var (
	backupDir      string
	outputFilePath string
)

func init() {
	Cmd.Flags().StringVarP(&backupDir, "dir", "d", "", "backup directory (defaults to BACKUP_DIR)")
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export-backups command
var Cmd = &cobra.Command{
	Use:   "export-backups",
	Short: "Export fallback backup files to excel",
	Long: `Export fallback backup files to excel

- One worksheet per row kind (transcripts, webhook responses)
- Rows keep the column order of the worksheet they were meant for`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if backupDir == "" {
			if _, err := config.LoadEnv(); err != nil {
				return err
			}
			backupDir = os.Getenv("BACKUP_DIR")
			if backupDir == "" {
				backupDir = config.DefaultBackupDir
			}
		}

		backups, skipped, err := export.LoadBackups(backupDir)
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups found in %s", backupDir)
		}

		counts, err := export.ToExcel(backups, outputFilePath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for kind, n := range counts {
			fmt.Fprintf(out, "%s: %d rows\n", kind, n)
		}
		for _, name := range skipped {
			fmt.Fprintf(out, "skipped unreadable backup %s\n", name)
		}
		fmt.Fprintf(out, "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}
