// Package sshconfig parses OpenSSH client configuration files and resolves
// the Host stanzas they declare into a flat list of concrete host records.
//
// Parsing of the file text is delegated to github.com/kevinburke/ssh_config;
// this package maps its decoded stanzas into Blocks and then runs the
// resolution pipeline (see Resolve) over them.
package sshconfig

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"github.com/kevinburke/ssh_config"

	"sshp/internal/errors"
	"sshp/internal/logger"
)

// SystemConfigPath is the system-wide client configuration file. It is
// treated as optional everywhere: most machines don't customize it.
const SystemConfigPath = "/etc/ssh/ssh_config"

var log = logger.NewEnvLogger("[sshconfig]")

// ParseFile reads one configuration file and returns its Host stanzas as
// blocks, in declaration order. Match stanzas are not supported by the
// decoder and are cut off before decoding; Include directives are left
// unresolved.
func ParseFile(path string) ([]*Block, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't read SSH config file: "+path,
			"Check the file exists and is readable")
	}

	return parse(content, path)
}

// ParseFiles parses every path independently and concatenates the results in
// argument order. Hosts are not deduplicated across files; that is the
// caller's call to make. A missing system-wide config is skipped silently,
// since most machines don't have one.
func ParseFiles(paths []string) ([]*Block, error) {
	var blocks []*Block
	for _, path := range paths {
		parsed, err := ParseFile(path)
		if err != nil {
			if path == SystemConfigPath && stderrors.Is(err, fs.ErrNotExist) {
				log.Debug("skipping missing system config: %s", path)
				continue
			}
			return nil, err
		}
		blocks = append(blocks, parsed...)
	}
	return blocks, nil
}

// parse decodes file content into blocks. The decoder rejects Match
// directives, so everything from the first Match line on is dropped with a
// warning, mirroring how ssh clients without Match support behave.
func parse(content []byte, path string) ([]*Block, error) {
	content, matchLine := truncateAtMatch(content)
	if matchLine > 0 {
		log.Warn("%s: ignoring everything from 'Match' directive on line %d", path, matchLine)
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Can't parse SSH config file: "+path,
			"Check the file for syntax errors")
	}

	var blocks []*Block
	for _, host := range cfg.Hosts {
		patterns := make([]string, 0, len(host.Patterns))
		for _, p := range host.Patterns {
			patterns = append(patterns, p.String())
		}

		b := NewBlock(patterns)
		for _, node := range host.Nodes {
			kv, ok := node.(*ssh_config.KV)
			if !ok {
				continue
			}
			b.Set(Entry{Kind: Kind(kv.Key), Value: kv.Value})
		}

		// The decoder synthesizes a leading "Host *" stanza to hold
		// top-level directives. Drop it when it holds nothing.
		if len(b.Entries) == 0 && len(b.LocalForwards) == 0 && isImplicitAll(patterns) && len(blocks) == 0 {
			continue
		}

		blocks = append(blocks, b)
	}

	return blocks, nil
}

// isImplicitAll reports whether the pattern list is the decoder's implicit
// catch-all stanza.
func isImplicitAll(patterns []string) bool {
	return len(patterns) == 1 && patterns[0] == "*"
}

// truncateAtMatch returns the content up to the first Match directive and the
// 1-indexed line it was found on (0 when there is none).
func truncateAtMatch(content []byte) ([]byte, int) {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToLower(trimmed), "match ") {
			return []byte(strings.Join(lines[:i], "\n")), i + 1
		}
	}
	return content, 0
}
