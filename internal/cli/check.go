package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"sshp/internal/errors"
	"sshp/internal/probe"
	"sshp/internal/sshconfig"
	"sshp/internal/ui"
)

var checkTimeoutFlag string

// checkCmd probes connectivity to resolved hosts.
var checkCmd = &cobra.Command{
	Use:   "check [host...]",
	Short: "Probe connectivity to resolved hosts",
	Long: `Test whether resolved hosts are reachable over SSH.

Each host gets a TCP dial plus an SSH handshake; an authentication failure
still counts as reachable. Without arguments every resolved host is probed.

Examples:
  sshp check
  sshp check web db
  sshp check --timeout 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		timeout := probe.DefaultTimeout
		if checkTimeoutFlag != "" {
			parsed, err := time.ParseDuration(checkTimeoutFlag)
			if err != nil {
				return errors.WrapWithCode(err, errors.ErrConfig,
					fmt.Sprintf("Invalid timeout: %s", checkTimeoutFlag),
					"Use a valid duration like 2s, 5s, or 1m")
			}
			timeout = parsed
		}

		cfg, err := effectiveConfig(cmd)
		if err != nil {
			return err
		}

		hosts, err := loadHosts(cfg)
		if err != nil {
			return err
		}

		hosts, err = filterHostsByName(hosts, args)
		if err != nil {
			return err
		}
		if len(hosts) == 0 {
			return errors.New(errors.ErrConfig,
				"No hosts to check",
				"Add Host entries to your SSH config first")
		}

		failed := 0
		for _, result := range probe.All(hosts, timeout) {
			if result.Success {
				fmt.Printf("%s %s (%s)\n", ui.SymbolSuccess, result.Host, result.Latency.Round(time.Millisecond))
				continue
			}
			failed++
			fmt.Printf("%s %s: %v\n", ui.SymbolFailure, result.Host, result.Error)
		}

		if failed > 0 {
			return errors.NewExitError(1)
		}
		return nil
	},
}

// filterHostsByName keeps the hosts whose name or alias is in names.
// An unknown name is an error so typos don't silently pass.
func filterHostsByName(hosts []sshconfig.Host, names []string) ([]sshconfig.Host, error) {
	if len(names) == 0 {
		return hosts, nil
	}

	byName := make(map[string]sshconfig.Host)
	for _, h := range hosts {
		byName[h.Name] = h
		for _, alias := range h.Aliases {
			byName[alias] = h
		}
	}

	var filtered []sshconfig.Host
	for _, name := range names {
		h, ok := byName[name]
		if !ok {
			return nil, errors.New(errors.ErrConfig,
				fmt.Sprintf("Unknown host: %s", name),
				"Run 'sshp list' to see the resolved host names")
		}
		filtered = append(filtered, h)
	}
	return filtered, nil
}

func init() {
	checkCmd.Flags().StringVar(&checkTimeoutFlag, "timeout", "", "probe timeout per host (e.g., 2s, 5s)")

	rootCmd.AddCommand(checkCmd)
}
