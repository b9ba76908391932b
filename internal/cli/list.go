package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"sshp/internal/errors"
	"sshp/internal/ui"
	"sshp/internal/util"
)

var (
	listJSONFlag      bool
	listShowProxyFlag bool
)

// listCmd prints the resolved host list without starting the TUI.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print resolved hosts without the picker",
	Long: `Resolve the configured SSH config files and print every host.

Useful for scripts and for checking what the picker would show.

Examples:
  sshp list
  sshp list --json | jq '.[].name'
  sshp list --config ./testdata/config`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("show-proxy-command") {
			cfg.ShowProxyCommand = listShowProxyFlag
		}

		hosts, err := loadHosts(cfg)
		if err != nil {
			return err
		}

		if listJSONFlag {
			data, err := json.MarshalIndent(hosts, "", "  ")
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrExec,
					"Failed to serialize hosts as JSON",
					"")
			}
			fmt.Println(string(data))
			return nil
		}

		if len(hosts) == 0 {
			fmt.Println("No hosts found.")
			return nil
		}

		fmt.Println(ui.RenderHostTable(hosts, cfg.ShowProxyCommand))
		fmt.Printf("%d %s\n", len(hosts), util.Pluralize(len(hosts), "host", "hosts"))
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSONFlag, "json", false, "output as JSON")
	listCmd.Flags().BoolVar(&listShowProxyFlag, "show-proxy-command", false, "show the ProxyCommand column")

	rootCmd.AddCommand(listCmd)
}
