// Package commands implements the fltrc CLI surface of spec.md §6:
// prg_clnt [-u | -d] <server-host> <src-path> <tgt-path>
// prg_clnt [-u | -d] <server-host> -i
// prg_clnt -h
//
// Grounded on the teacher's cmd/dfsctl root command shape (persistent
// flags synced in PersistentPreRun), trimmed to this program's flat,
// non-subcommand CLI and its exact exit-code contract — which is why
// RunE stores the exit code instead of returning an error for cobra to
// turn into its own generic exit(1).
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fltrhq/fltr/internal/client"
	"github.com/fltrhq/fltr/internal/config"
	"github.com/fltrhq/fltr/internal/logger"
)

var (
	uploadFlag   bool
	downloadFlag bool
	interactFlag bool
	cfgFile      string

	// ExitCode is set by RunE and read by main after Execute returns.
	ExitCode = client.ExitSuccess
)

var rootCmd = &cobra.Command{
	Use:   "fltrc [-u | -d] <server-host> <src-path> <tgt-path>",
	Short: "fltrc transfers a file to or from an fltrd server",
	Long: `fltrc is the client half of the file-transfer RPC service: it uploads
a local file to a remote fltrd server, downloads a remote file to local
disk, or lets you pick both ends interactively with -i.

Examples:
  fltrc -u srv /home/u/src.txt /tmp/dst.txt
  fltrc -d srv /tmp/src.txt /home/u/dst.txt
  fltrc -u srv -i`,
	Args:          cobra.RangeArgs(1, 3),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func init() {
	rootCmd.Flags().BoolVarP(&uploadFlag, "upload", "u", false, "upload a local file to the remote host")
	rootCmd.Flags().BoolVarP(&downloadFlag, "download", "d", false, "download a remote file to the local host")
	rootCmd.Flags().BoolVarP(&interactFlag, "interact", "i", false, "pick source and target interactively")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to config file (env/defaults used if omitted)")
}

// Execute runs the root command; called once from main.main. It always
// returns nil for argument/transfer-level failures (those set ExitCode
// instead) so main can propagate spec.md §6's exact process exit code;
// it returns a non-nil error only for a cobra-internal parse failure.
func Execute() error {
	return rootCmd.Execute()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if interactFlag && len(args) != 1 {
		_ = cmd.Usage()
		ExitCode = client.ExitUsage
		return nil
	}
	if !interactFlag && len(args) != 3 {
		_ = cmd.Usage()
		ExitCode = client.ExitUsage
		return nil
	}
	if uploadFlag == downloadFlag {
		cmd.PrintErrln("!--exactly one of -u or -d is required")
		ExitCode = client.ExitUsage
		return nil
	}

	cfg, err := config.LoadClientConfig(cfgFile)
	if err != nil {
		cmd.PrintErrf("!--load config: %v\n", err)
		ExitCode = client.ExitHandleFailed
		return nil
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		cmd.PrintErrf("!--init logger: %v\n", err)
		ExitCode = client.ExitHandleFailed
		return nil
	}

	req := client.Request{
		Host:     args[0],
		Interact: interactFlag,
		Timeout:  int(cfg.CallTimeout.Seconds()),
	}
	switch {
	case uploadFlag:
		req.Action = client.ActionUpload
	case downloadFlag:
		req.Action = client.ActionDownload
	}
	if !interactFlag {
		req.SourcePath, req.TargetPath = args[1], args[2]
	}

	ExitCode = client.Run(context.Background(), req, os.Stdout, os.Stderr)
	return nil
}
