package cli

import (
	"context"
	"fmt"

	"github.com/isabella232/sbt-zero-seven/internal/launch"
	"github.com/isabella232/sbt-zero-seven/internal/log"
	"github.com/isabella232/sbt-zero-seven/internal/resolve"
	"github.com/isabella232/sbt-zero-seven/internal/ui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [tool-args...]",
	Short: "Launch the build tool",
	Long: `Resolve the project's declared Scala and sbt versions, fetch anything
missing into the boot directory, and run sbt with the remaining
arguments. This is also what the bare sbtboot command does.`,
	Args: cobra.ArbitraryArgs,
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	openBootLog(cmd)
	defer log.Close()

	engine := resolve.NewClient(launcherCfg.Repositories)
	loader := launch.NewLoader(launcherCfg, engine, ui.NewConsole())

	env, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	code, err := env.Run(ctx, args)
	if err != nil {
		return fmt.Errorf("running %s: %w", launcherCfg.ToolName, err)
	}
	exitCode = code
	return nil
}
