package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"transcript-sheets/cmd/tsheets/cmd/check"
	"transcript-sheets/cmd/tsheets/cmd/export"
	"transcript-sheets/cmd/tsheets/cmd/process"
	"transcript-sheets/cmd/tsheets/cmd/serve"
	"transcript-sheets/cmd/tsheets/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tsheets",
	Short: "Transcribe audio and video uploads into Google Sheets",
	Long: `Transcribe audio and video uploads into Google Sheets.

- serve runs the HTTP API (transcription, VideoAsk webhooks, health)
- process-uploads transcribes every media file in a directory
- check probes a running instance and sends alerts when it is unhealthy
- export-backups turns fallback files into an xlsx workbook`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(process.Cmd)
	rootCmd.AddCommand(check.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
