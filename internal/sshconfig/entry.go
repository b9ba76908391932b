package sshconfig

import "strings"

// EntryKind is a canonical (lower-cased) SSH config keyword. Known keywords
// get named constants below; any other keyword flows through the pipeline
// verbatim without special handling.
type EntryKind string

const (
	KindUser         EntryKind = "user"
	KindHostname     EntryKind = "hostname"
	KindPort         EntryKind = "port"
	KindProxyCommand EntryKind = "proxycommand"
	KindLocalForward EntryKind = "localforward"
	KindIdentityFile EntryKind = "identityfile"
)

// Kind canonicalizes an SSH config keyword. The file format is
// case-insensitive, so "HostName", "hostname", and "HOSTNAME" are the same
// entry kind.
func Kind(keyword string) EntryKind {
	return EntryKind(strings.ToLower(keyword))
}

// Entry is a single key/value directive as produced by the block parser.
type Entry struct {
	Kind  EntryKind
	Value string
}

// LocalForward describes one LocalForward directive, already split into its
// local and remote endpoints.
type LocalForward struct {
	LocalPort  string `json:"local_port"`
	RemoteHost string `json:"remote_host"`
	RemotePort string `json:"remote_port"`
}

// parseLocalForward splits a LocalForward value like "8888 localhost:9999"
// into its parts. Values that don't have a local port plus a host:port remote
// endpoint are dropped (ok is false) rather than treated as an error, so a
// malformed forward in a working config never breaks resolution.
func parseLocalForward(value string) (LocalForward, bool) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return LocalForward{}, false
	}

	remote := strings.Split(fields[1], ":")
	if len(remote) != 2 {
		return LocalForward{}, false
	}

	return LocalForward{
		LocalPort:  fields[0],
		RemoteHost: remote[0],
		RemotePort: remote[1],
	}, true
}
