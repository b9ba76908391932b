package probe

import (
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sshp/internal/sshconfig"
)

func TestAddress(t *testing.T) {
	tests := []struct {
		name string
		host sshconfig.Host
		want string
	}{
		{
			name: "explicit port",
			host: sshconfig.Host{Destination: "db.example.com", Port: "2222"},
			want: "db.example.com:2222",
		},
		{
			name: "default port",
			host: sshconfig.Host{Destination: "db.example.com"},
			want: "db.example.com:22",
		},
		{
			name: "ipv6 destination",
			host: sshconfig.Host{Destination: "::1", Port: "22"},
			want: "[::1]:22",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Address(tt.host))
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want FailReason
	}{
		{
			name: "timeout",
			err:  errors.New("dial tcp 10.0.0.1:22: i/o timeout"),
			want: FailTimeout,
		},
		{
			name: "refused",
			err:  errors.New("dial tcp 127.0.0.1:22: connect: connection refused"),
			want: FailRefused,
		},
		{
			name: "unreachable",
			err:  errors.New("dial tcp 10.0.0.1:22: connect: no route to host"),
			want: FailUnreachable,
		},
		{
			name: "auth",
			err:  errors.New("ssh: handshake failed: ssh: unable to authenticate"),
			want: FailAuth,
		},
		{
			name: "unknown",
			err:  errors.New("something odd"),
			want: FailUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorize("host", tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, "host", got.Host)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestProbe_Refused(t *testing.T) {
	// Grab a port that nothing is listening on.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	host := sshconfig.Host{
		Name:        "dead",
		Destination: "127.0.0.1",
		Port:        strconv.Itoa(address.Port),
	}

	_, probeErr := Probe(host, time.Second)
	require.Error(t, probeErr)

	var categorized *Error
	require.ErrorAs(t, probeErr, &categorized)
	assert.Equal(t, FailRefused, categorized.Reason)
}

func TestAll_ReportsPerHost(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	address := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	hosts := []sshconfig.Host{
		{Name: "a", Destination: "127.0.0.1", Port: strconv.Itoa(address.Port)},
		{Name: "b", Destination: "127.0.0.1", Port: strconv.Itoa(address.Port)},
	}

	results := All(hosts, time.Second)

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Host)
	assert.Equal(t, "b", results[1].Host)
	for _, r := range results {
		assert.False(t, r.Success)
		assert.Error(t, r.Error)
	}
}

func TestFailReasonString(t *testing.T) {
	assert.Equal(t, "connection timed out", FailTimeout.String())
	assert.Equal(t, "connection refused", FailRefused.String())
	assert.Equal(t, "host unreachable", FailUnreachable.String())
	assert.Equal(t, "authentication failed", FailAuth.String())
	assert.Equal(t, "unknown error", FailUnknown.String())
}
