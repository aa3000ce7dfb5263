package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/Azsael/CdkDemo/internal/config"
	"github.com/Azsael/CdkDemo/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the cdkdemo configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration template",
	Long: `Write a configuration file with the default settings and example values for
the identifiers that name existing infrastructure.

Examples:
  cdkdemo config init                    # ./cdkdemo.yaml
  cdkdemo config init deploy/prod.yaml   # Custom path
  cdkdemo config init --force            # Overwrite`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the merged settings and validate them",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitForce bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultFileName
	if len(args) > 0 {
		path = args[0]
	}

	if !configInitForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to check %s: %w", path, err)
		}
	}

	settings := config.Template()
	if err := config.Write(path, &settings); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintln(cmd.OutOrStdout(), ui.HintStyle.Render("Edit network, dns, database and service.repository before deploying."))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	out, err := config.Marshal(settings)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))

	if err := settings.Validate(); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), ui.BadStyle.Render("✗ invalid"))
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.GoodStyle.Render("✓ valid"))
	return nil
}
