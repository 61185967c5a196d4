package cli

import (
	"context"

	"github.com/isabella232/sbt-zero-seven/internal/boot"
	"github.com/isabella232/sbt-zero-seven/internal/buildprops"
	"github.com/isabella232/sbt-zero-seven/internal/locate"
	"github.com/isabella232/sbt-zero-seven/internal/log"
	"github.com/isabella232/sbt-zero-seven/internal/resolve"
	"github.com/isabella232/sbt-zero-seven/internal/ui"
	"github.com/isabella232/sbt-zero-seven/internal/update"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-fetch the declared Scala and sbt versions",
	Long: `Force a fetch of both the runtime and the tool at the versions the
project declares, regardless of what the boot directory already holds.
Useful after a corrupted download or when tracking a snapshot version.`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	openBootLog(cmd)
	defer log.Close()

	console := ui.NewConsole()
	store := &buildprops.Store{
		Path:         launcherCfg.PropertiesPath,
		RuntimeLabel: launcherCfg.RuntimeLabel,
		ToolLabel:    launcherCfg.ToolName,
		Prompt:       console,
	}
	pair, err := store.Read()
	if err != nil {
		return err
	}

	engine := resolve.NewClient(launcherCfg.Repositories)
	coordinator := update.NewCoordinator(launcherCfg, engine)
	if err := coordinator.Update(ctx, pair, boot.Kinds()); err != nil {
		return err
	}

	for _, k := range boot.Kinds() {
		dir := locate.DirFor(launcherCfg, pair, k)
		if locate.IsPresent(dir, locate.ProbesFor(launcherCfg, k)) {
			ui.Infof("%s %s updated in %s", ui.Green("✓"), k, dir)
		} else {
			ui.Warn(k.String() + " still fails its presence probe after update")
		}
	}
	return nil
}
