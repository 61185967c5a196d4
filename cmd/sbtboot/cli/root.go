// Package cli implements the sbtboot command-line interface using
// Cobra. The bare command launches the resolved build tool; subcommands
// force updates, clean the boot directory and print the version.
package cli

import (
	"github.com/isabella232/sbt-zero-seven/internal/config"
	"github.com/isabella232/sbt-zero-seven/internal/log"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	jsonOut    bool
	projectDir string

	// launcherCfg is resolved once per invocation and threaded through
	// explicitly; no configuration lives in process globals.
	launcherCfg config.Config

	// exitCode carries the launched tool's exit status out to main.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "sbtboot [tool-args...]",
	Short: "Bootstrap launcher for sbt",
	Long: `sbtboot determines which Scala and sbt versions a project declares,
downloads whatever is missing into the project's boot directory, and
hands control to the resolved sbt with an isolated classpath.

Run without a subcommand to launch the build tool; any arguments are
passed through to it.`,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(projectDir)
		if err != nil {
			return err
		}
		launcherCfg = cfg

		// Stderr-only logging until a launch or update opens the boot
		// directory's update.log.
		if err := log.Init(log.Options{Verbose: verbose, JSONFormat: jsonOut}); err != nil {
			cmd.PrintErrf("Warning: failed to initialize logging: %v\n", err)
		}
		return nil
	},
	RunE: runLaunch,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode returns the exit status the process should finish with.
func ExitCode() int {
	return exitCode
}

// openBootLog re-initializes logging with the update.log file under the
// boot directory, so the full resolution trace of this cycle lands
// there.
func openBootLog(cmd *cobra.Command) {
	err := log.Init(log.Options{
		Verbose:    verbose,
		JSONFormat: jsonOut,
		BootDir:    launcherCfg.BootDir,
	})
	if err != nil {
		cmd.PrintErrf("Warning: failed to open %s: %v\n", log.FileName, err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output logs in JSON format")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", ".", "project directory to launch")
}
