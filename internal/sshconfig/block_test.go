package sshconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWildcard(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{"db.example.com", false},
		{"*.example.com", true},
		{"host?", true},
		{"!db.example.com", true},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, isWildcard(tt.pattern))
		})
	}
}

func TestPatternMatchers(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		matching  []string
		rejecting []string
		negated   bool
	}{
		{
			name:      "star matches any run",
			pattern:   "*.example.com",
			matching:  []string{"db.example.com", "a.b.example.com", ".example.com"},
			rejecting: []string{"example.com", "db.example.org"},
		},
		{
			name:      "question mark matches one char",
			pattern:   "host?",
			matching:  []string{"host1", "hosta"},
			rejecting: []string{"host", "host12"},
		},
		{
			name:      "dot is literal",
			pattern:   "a.b*",
			matching:  []string{"a.bc"},
			rejecting: []string{"aXbc"},
		},
		{
			name:      "negation inverts the match",
			pattern:   "!db.example.com",
			matching:  []string{"web.example.com", "anything"},
			rejecting: []string{"db.example.com"},
			negated:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBlock([]string{tt.pattern})
			matchers := b.patternMatchers()
			require.Len(t, matchers, 1)
			assert.Equal(t, tt.negated, matchers[0].negated)

			for _, name := range tt.matching {
				assert.True(t, matchers[0].matches(name), "expected %q to satisfy %q", name, tt.pattern)
			}
			for _, name := range tt.rejecting {
				assert.False(t, matchers[0].matches(name), "expected %q to not satisfy %q", name, tt.pattern)
			}
		})
	}
}

func TestPatternMatchers_ConcreteBlockHasNone(t *testing.T) {
	b := NewBlock([]string{"db.example.com", "web.example.com"})
	assert.Empty(t, b.patternMatchers())
}

func TestPatternMatchers_NoPatterns(t *testing.T) {
	b := NewBlock(nil)
	assert.Empty(t, b.patternMatchers())
}

func TestMergeAbsent(t *testing.T) {
	target := NewBlock([]string{"host"})
	target.Entries[KindUser] = "explicit"
	target.LocalForwards = []LocalForward{{LocalPort: "1", RemoteHost: "a", RemotePort: "2"}}

	src := NewBlock([]string{"*"})
	src.Entries[KindUser] = "inherited"
	src.Entries[KindPort] = "2222"
	src.LocalForwards = []LocalForward{{LocalPort: "3", RemoteHost: "b", RemotePort: "4"}}

	target.mergeAbsent(src)

	assert.Equal(t, "explicit", target.Get(KindUser), "existing entries are never overwritten")
	assert.Equal(t, "2222", target.Get(KindPort), "missing entries are inherited")
	assert.Len(t, target.LocalForwards, 2, "forwards always append")
}

func TestHasHostPlaceholder(t *testing.T) {
	b := NewBlock([]string{"host"})
	assert.False(t, b.hasHostPlaceholder())

	b.Entries[KindProxyCommand] = "ssh -W %h:%p gateway"
	assert.True(t, b.hasHostPlaceholder())
}
