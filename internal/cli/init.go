package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"sshp/internal/config"
	"sshp/internal/errors"
	"sshp/internal/ui"
)

var initForceFlag bool

// initCmd creates the sshp config file interactively.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sshp configuration file",
	Long: `Create ~/.config/sshp/config.yaml with guided prompts.

The file stores defaults for the picker flags so you don't have to repeat
them on every run. Explicit flags still win over file values.

Examples:
  sshp init
  sshp init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(initForceFlag)
	},
}

func initConfig(force bool) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		var overwrite bool

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	paths := strings.Join(cfg.ConfigPaths, ", ")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("SSH config files (comma-separated)").
				Value(&paths),
			huh.NewInput().
				Title("Command template").
				Description(`Go template over the selected host, e.g. ssh "{{.Name}}"`).
				Value(&cfg.Template),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sort hosts by name?").
				Value(&cfg.Sort),
			huh.NewConfirm().
				Title("Show the ProxyCommand column?").
				Value(&cfg.ShowProxyCommand),
			huh.NewConfirm().
				Title("Exit after the SSH session ends?").
				Value(&cfg.ExitAfterSession),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"")
	}

	cfg.ConfigPaths = splitPaths(paths)

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("%s Wrote %s\n", ui.SymbolSuccess, path)
	return nil
}

// splitPaths parses the comma-separated path list from the form.
func splitPaths(s string) []string {
	var paths []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			paths = append(paths, trimmed)
		}
	}
	return paths
}

func init() {
	initCmd.Flags().BoolVarP(&initForceFlag, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(initCmd)
}
