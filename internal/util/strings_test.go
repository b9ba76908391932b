package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		def   string
		want  string
	}{
		{
			name:  "empty slice returns default",
			items: nil,
			def:   "-",
			want:  "-",
		},
		{
			name:  "empty default",
			items: nil,
			def:   "",
			want:  "",
		},
		{
			name:  "items win over default",
			items: []string{"a", "b"},
			def:   "-",
			want:  "a, b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinOrDefault(tt.items, tt.def)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "host", Pluralize(1, "host", "hosts"))
	assert.Equal(t, "hosts", Pluralize(0, "host", "hosts"))
	assert.Equal(t, "hosts", Pluralize(2, "host", "hosts"))
}
