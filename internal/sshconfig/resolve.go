package sshconfig

import "maps"

// Host is a fully resolved host record: flattened, defaulted, and merged,
// ready for the picker or for JSON output. Destination is always set; the
// other scalar fields are empty when the config doesn't declare them.
type Host struct {
	Name          string         `json:"name"`
	Aliases       []string       `json:"aliases"`
	User          string         `json:"user,omitempty"`
	Destination   string         `json:"destination"`
	Port          string         `json:"port,omitempty"`
	ProxyCommand  string         `json:"proxy_command,omitempty"`
	LocalForwards []LocalForward `json:"local_forwards"`
}

// Resolve flattens parsed blocks into concrete host records. It runs four
// stages in strict order:
//
//  1. spread        — one block per pattern
//  2. applyPatterns — wildcard blocks propagate into matching concrete
//     blocks (insert only if absent), then disappear
//  3. defaultHostnames — blocks without a Hostname get their own name
//  4. mergeSameBlocks  — blocks with identical entries collapse into one
//     record carrying all their patterns
//
// Resolve is total: it never fails, and malformed shapes (empty pattern
// lists, unmatched wildcards) are skipped rather than reported. It is also
// idempotent — re-resolving its own output changes nothing.
//
// Note the asymmetry between stages 2 and 4: pattern propagation never
// overwrites an explicit entry, while duplicate merging lets the later
// block's value win. Both behaviors are load-bearing for real configs.
func Resolve(blocks []*Block) []Host {
	blocks = spread(blocks)
	blocks = applyPatterns(blocks)
	defaultHostnames(blocks)
	blocks = mergeSameBlocks(blocks)

	hosts := make([]Host, 0, len(blocks))
	for _, b := range blocks {
		hosts = append(hosts, b.resolvedHost())
	}
	return hosts
}

// spread splits every multi-pattern block into one clone per pattern,
// keeping both block order and pattern order. Blocks without patterns pass
// through untouched.
func spread(blocks []*Block) []*Block {
	out := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		if len(b.Patterns) == 0 {
			out = append(out, b)
			continue
		}
		for _, pattern := range b.Patterns {
			c := b.clone()
			c.Patterns = []string{pattern}
			out = append(out, c)
		}
	}
	return out
}

// applyPatterns propagates every wildcard block's entries into each concrete
// block whose name satisfies the wildcard (inverted for negated patterns),
// then drops the wildcard blocks. Matchers are compiled once per call.
// Wildcard blocks never receive entries from other wildcard blocks, and a
// target's own entries are never overwritten.
func applyPatterns(blocks []*Block) []*Block {
	matchers := make([][]patternMatcher, len(blocks))
	for i, b := range blocks {
		matchers[i] = b.patternMatchers()
	}

	for i, b := range blocks {
		if len(matchers[i]) == 0 {
			continue
		}

		for j, target := range blocks {
			if i == j || len(matchers[j]) > 0 || len(target.Patterns) == 0 {
				continue
			}

			for _, m := range matchers[i] {
				if m.matches(target.Patterns[0]) {
					target.mergeAbsent(b)
					break
				}
			}
		}
	}

	out := make([]*Block, 0, len(blocks))
	for i, b := range blocks {
		if len(matchers[i]) == 0 {
			out = append(out, b)
		}
	}
	return out
}

// defaultHostnames fills in the Hostname entry from the block's own name
// where the config didn't declare one. Must run after applyPatterns (an
// inherited Hostname counts as declared) and before mergeSameBlocks (two
// hosts that only differ by their defaulted hostname must not merge).
func defaultHostnames(blocks []*Block) {
	for _, b := range blocks {
		if _, ok := b.Entries[KindHostname]; ok {
			continue
		}
		if len(b.Patterns) == 0 {
			continue
		}
		b.Entries[KindHostname] = b.Patterns[0]
	}
}

// mergeSameBlocks collapses blocks whose scalar entries are exactly equal
// into the earliest such block, which collects the later blocks' patterns as
// aliases. Scanning back to front keeps removal indices stable. A later block
// whose values reference the %h placeholder is never merged away, since those
// values mean something different under each host name.
func mergeSameBlocks(blocks []*Block) []*Block {
	for i := len(blocks) - 1; i > 0; i-- {
		cur := blocks[i]

		for j := i - 1; j >= 0; j-- {
			target := blocks[j]

			if !maps.Equal(target.Entries, cur.Entries) {
				continue
			}
			if cur.hasHostPlaceholder() {
				continue
			}

			target.absorb(cur)
			blocks = append(blocks[:i], blocks[i+1:]...)
			break
		}
	}
	return blocks
}

// resolvedHost projects the block onto the public record shape.
func (b *Block) resolvedHost() Host {
	h := Host{
		User:          b.Get(KindUser),
		Destination:   b.Get(KindHostname),
		Port:          b.Get(KindPort),
		ProxyCommand:  b.Get(KindProxyCommand),
		LocalForwards: append([]LocalForward(nil), b.LocalForwards...),
	}
	if h.LocalForwards == nil {
		h.LocalForwards = []LocalForward{}
	}
	if len(b.Patterns) > 0 {
		h.Name = b.Patterns[0]
		h.Aliases = append([]string(nil), b.Patterns[1:]...)
	}
	if h.Aliases == nil {
		h.Aliases = []string{}
	}
	return h
}
