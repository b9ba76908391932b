package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshp/internal/sshconfig"
)

func TestFilterHostsByName(t *testing.T) {
	hosts := []sshconfig.Host{
		{Name: "web", Aliases: []string{"web-prod"}, Destination: "web.example.com"},
		{Name: "db", Aliases: []string{}, Destination: "db.example.com"},
		{Name: "bastion", Aliases: []string{}, Destination: "bastion.example.com"},
	}

	tests := []struct {
		name      string
		names     []string
		wantHosts []string
		wantErr   bool
	}{
		{
			name:      "empty filter returns all hosts",
			names:     nil,
			wantHosts: []string{"web", "db", "bastion"},
		},
		{
			name:      "filter by name",
			names:     []string{"db"},
			wantHosts: []string{"db"},
		},
		{
			name:      "filter by alias",
			names:     []string{"web-prod"},
			wantHosts: []string{"web"},
		},
		{
			name:      "preserves argument order",
			names:     []string{"bastion", "web"},
			wantHosts: []string{"bastion", "web"},
		},
		{
			name:    "unknown name errors",
			names:   []string{"nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filterHostsByName(hosts, tt.names)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, h := range got {
				names = append(names, h.Name)
			}
			assert.Equal(t, tt.wantHosts, names)
		})
	}
}

func TestSplitPaths(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single path",
			input: "~/.ssh/config",
			want:  []string{"~/.ssh/config"},
		},
		{
			name:  "multiple paths with spaces",
			input: "/etc/ssh/ssh_config, ~/.ssh/config",
			want:  []string{"/etc/ssh/ssh_config", "~/.ssh/config"},
		},
		{
			name:  "empty segments dropped",
			input: ", ~/.ssh/config, ,",
			want:  []string{"~/.ssh/config"},
		},
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPaths(tt.input))
		})
	}
}

func TestSortHostsByName(t *testing.T) {
	hosts := []sshconfig.Host{
		{Name: "web"},
		{Name: "Bastion"},
		{Name: "db"},
	}

	sortHostsByName(hosts)

	var names []string
	for _, h := range hosts {
		names = append(names, h.Name)
	}
	assert.Equal(t, []string{"Bastion", "db", "web"}, names)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", formatVersion("v1.2.3"))
	assert.Equal(t, "", formatVersion(""))
}
