package cli

import (
	"fmt"
	"os"

	"github.com/isabella232/sbt-zero-seven/internal/ui"
	"github.com/spf13/cobra"
)

var cleanForce bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the project's boot directory",
	Long: `Delete every materialized Scala and sbt version under the project's
boot directory. The next launch re-fetches whatever the project
declares.

Asks for confirmation unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: cleanBoot,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "skip confirmation prompt")
}

func cleanBoot(cmd *cobra.Command, args []string) error {
	bootDir := launcherCfg.BootDir
	if _, err := os.Stat(bootDir); os.IsNotExist(err) {
		ui.Infof("Nothing to clean: %s does not exist", bootDir)
		return nil
	}

	if !cleanForce {
		console := ui.NewConsole()
		if !console.Confirm(fmt.Sprintf("Remove %s and everything under it?", bootDir)) {
			ui.Info("Aborted.")
			return nil
		}
	}

	if err := os.RemoveAll(bootDir); err != nil {
		return fmt.Errorf("removing boot directory: %w", err)
	}
	ui.Infof("Removed %s", bootDir)
	return nil
}
