// Package commands implements the fltrd CLI, grounded on the teacher's
// cmd/dittofs/commands root/start split but trimmed to this program's
// single responsibility: running the file-transfer server.
package commands

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fltrd",
	Short: "fltrd runs the file-transfer RPC server",
	Long: `fltrd is the server half of the file-transfer RPC service: it accepts
upload, download, and interactive-pick requests over a TCP connection,
identified on the wire by program number 0x20000027 version 1.

Use "fltrd serve --help" for startup options.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command; called once from main.main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (env/defaults used if omitted)")
	rootCmd.AddCommand(serveCmd)
}

// GetConfigFile returns the --config flag value.
func GetConfigFile() string {
	return cfgFile
}
