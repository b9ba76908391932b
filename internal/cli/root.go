// Package cli wires the cobra command tree: the root command runs the
// interactive picker, subcommands cover non-interactive listing, probing,
// and config bootstrap.
package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sshp/internal/config"
	"sshp/internal/errors"
	"sshp/internal/launcher"
	"sshp/internal/sshconfig"
	"sshp/internal/ui"
)

// Root command flags. Config paths and sorting are persistent because list
// and check need them too.
var (
	configPathsFlag    []string
	sortFlag           bool
	searchFlag         string
	showProxyFlag      bool
	templateFlag       string
	onSessionStartFlag string
	onSessionEndFlag   string
	exitAfterFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "sshp",
	Short: "Interactive SSH host picker for your ssh_config",
	Long: `sshp reads your SSH configuration files, resolves every Host stanza
(wildcards, negations, and inherited entries included) into a flat host
list, and shows it in a searchable terminal UI.

Selecting a host runs a command template against it, "ssh" by default.

Examples:
  sshp
  sshp --search prod
  sshp --template 'mosh {{.Name}}'
  sshp list --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPicker(cmd)
	},
}

// Execute runs the root command. Exit codes from launched sessions are
// mirrored; every other error prints with its suggestion and exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if code, ok := errors.GetExitCode(err); ok {
			os.Exit(code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVarP(&configPathsFlag, "config", "c", nil,
		"SSH config file to read (repeatable; default /etc/ssh/ssh_config, ~/.ssh/config)")
	rootCmd.PersistentFlags().BoolVar(&sortFlag, "sort", false, "sort hosts by name")

	rootCmd.Flags().StringVarP(&searchFlag, "search", "s", "", "pre-fill the search filter")
	rootCmd.Flags().BoolVar(&showProxyFlag, "show-proxy-command", false, "show the ProxyCommand column")
	rootCmd.Flags().StringVarP(&templateFlag, "template", "t", "",
		`command template to run on selection (default `+config.DefaultTemplate+`)`)
	rootCmd.Flags().StringVar(&onSessionStartFlag, "on-session-start-template", "",
		"command template to run before the session starts")
	rootCmd.Flags().StringVar(&onSessionEndFlag, "on-session-end-template", "",
		"command template to run after the session ends")
	rootCmd.Flags().BoolVarP(&exitAfterFlag, "exit", "e", false,
		"exit after the session ends instead of returning to the picker")
}

// effectiveConfig layers explicit flags over the config file over built-in
// defaults.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.Path()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("config") || cmd.InheritedFlags().Changed("config") {
		cfg.ConfigPaths = configPathsFlag
	}
	if cmd.Flags().Changed("sort") || cmd.InheritedFlags().Changed("sort") {
		cfg.Sort = sortFlag
	}
	if cmd.Flags().Changed("show-proxy-command") {
		cfg.ShowProxyCommand = showProxyFlag
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = templateFlag
	}
	if cmd.Flags().Changed("on-session-start-template") {
		cfg.OnSessionStart = onSessionStartFlag
	}
	if cmd.Flags().Changed("on-session-end-template") {
		cfg.OnSessionEnd = onSessionEndFlag
	}
	if cmd.Flags().Changed("exit") {
		cfg.ExitAfterSession = exitAfterFlag
	}

	return cfg, nil
}

// loadHosts parses and resolves every configured SSH config file.
func loadHosts(cfg *config.Config) ([]sshconfig.Host, error) {
	blocks, err := sshconfig.ParseFiles(config.ExpandPaths(cfg.ConfigPaths))
	if err != nil {
		return nil, err
	}

	hosts := sshconfig.Resolve(blocks)
	if cfg.Sort {
		sortHostsByName(hosts)
	}
	return hosts, nil
}

// runPicker is the root command body: pick a host, launch the session, and
// loop back into the picker until the user quits or asked to exit.
func runPicker(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrExec,
			"Standard output is not a terminal",
			"The picker needs a TTY; use 'sshp list' for scripted output")
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	hosts, err := loadHosts(cfg)
	if err != nil {
		return err
	}

	if len(hosts) == 0 {
		return errors.New(errors.ErrConfig,
			"No hosts found in your SSH configuration",
			"Add Host entries to ~/.ssh/config, or point sshp at another file with --config")
	}

	session := launcher.Session{
		Template:        cfg.Template,
		OnStartTemplate: cfg.OnSessionStart,
		OnEndTemplate:   cfg.OnSessionEnd,
	}

	search := searchFlag
	for {
		host, err := ui.Pick(hosts, ui.PickerOptions{
			Search:           search,
			ShowProxyCommand: cfg.ShowProxyCommand,
		})
		if err != nil {
			return err
		}
		if host == nil {
			return nil
		}

		if err := session.Launch(*host); err != nil {
			return err
		}

		if cfg.ExitAfterSession {
			return nil
		}
		// Returning to the picker: drop the pre-filled search, the user
		// already found what they were looking for once.
		search = ""
	}
}

// sortHostsByName orders hosts case-insensitively by display name.
func sortHostsByName(hosts []sshconfig.Host) {
	slices.SortFunc(hosts, func(a, b sshconfig.Host) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
}
