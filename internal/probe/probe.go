// Package probe tests connectivity to resolved hosts. It is used by
// "sshp check" to tell reachable hosts from dead config entries.
package probe

import (
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"sshp/internal/logger"
	"sshp/internal/sshconfig"
)

// DefaultTimeout bounds a single probe attempt.
const DefaultTimeout = 5 * time.Second

var log = logger.NewEnvLogger("[probe]")

// FailReason categorizes why a probe failed.
type FailReason int

const (
	FailUnknown FailReason = iota
	FailTimeout
	FailRefused
	FailUnreachable
	FailAuth
)

// String returns a human-readable description of the failure reason.
func (r FailReason) String() string {
	switch r {
	case FailTimeout:
		return "connection timed out"
	case FailRefused:
		return "connection refused"
	case FailUnreachable:
		return "host unreachable"
	case FailAuth:
		return "authentication failed"
	default:
		return "unknown error"
	}
}

// Error is a failed probe with a categorized reason.
type Error struct {
	Host   string
	Reason FailReason
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("probe %s failed: %s (%v)", e.Host, e.Reason, e.Cause)
	}
	return fmt.Sprintf("probe %s failed: %s", e.Host, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Result is the outcome of probing one host.
type Result struct {
	Host    string
	Latency time.Duration
	Error   error
	Success bool
}

// Address returns the dialable address for a resolved host, defaulting the
// port to 22.
func Address(host sshconfig.Host) string {
	port := host.Port
	if port == "" {
		port = "22"
	}
	return net.JoinHostPort(host.Destination, port)
}

// Probe tests connectivity to a resolved host:
//
//  1. a TCP dial to verify the port is open
//  2. an SSH handshake, authenticating via the running agent, to verify the
//     far side really speaks SSH
//
// An authentication failure still proves the host is up, so it counts as
// success; everything else comes back as a categorized *Error.
func Probe(host sshconfig.Host, timeout time.Duration) (time.Duration, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	address := Address(host)
	start := time.Now()

	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return 0, categorize(host.Name, err)
	}

	user := host.User
	if user == "" {
		user = os.Getenv("USER")
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            agentAuth(),
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, cfg)
	if err != nil {
		conn.Close()
		probeErr := categorize(host.Name, err)
		if probeErr.Reason == FailAuth {
			// The server answered with an SSH banner and rejected our
			// credentials; for reachability purposes that's a pass.
			log.Debug("%s: reachable but auth failed", host.Name)
			return time.Since(start), nil
		}
		return 0, probeErr
	}

	ssh.NewClient(sshConn, chans, reqs).Close()
	return time.Since(start), nil
}

// maxWorkers caps concurrent probes. Each host sees at most one connection,
// so this only bounds local resource use, not per-server rate limits.
const maxWorkers = 8

// All probes every host and returns one result each, in input order.
func All(hosts []sshconfig.Host, timeout time.Duration) []Result {
	results := make([]Result, len(hosts))

	queue := make(chan int, len(hosts))
	for i := range hosts {
		queue <- i
	}
	close(queue)

	numWorkers := len(hosts)
	if numWorkers > maxWorkers {
		numWorkers = maxWorkers
	}

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				latency, err := Probe(hosts[i], timeout)
				results[i] = Result{
					Host:    hosts[i].Name,
					Latency: latency,
					Error:   err,
					Success: err == nil,
				}
			}
		}()
	}
	wg.Wait()

	return results
}

// agentAuth returns auth methods backed by the running ssh-agent, or none
// when no agent is available.
func agentAuth() []ssh.AuthMethod {
	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil
	}

	conn, err := net.Dial("unix", sock)
	if err != nil {
		log.Debug("can't reach ssh-agent: %v", err)
		return nil
	}

	return []ssh.AuthMethod{ssh.PublicKeysCallback(agent.NewClient(conn).Signers)}
}

// categorize maps raw dial/handshake errors onto probe failure reasons.
// String matching is the only portable option here; the underlying errors
// are platform-specific and mostly unexported.
func categorize(host string, err error) *Error {
	probeErr := &Error{
		Host:   host,
		Reason: FailUnknown,
		Cause:  err,
	}

	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "i/o timeout") {
		probeErr.Reason = FailTimeout
		return probeErr
	}

	if strings.Contains(errStr, "connection refused") {
		probeErr.Reason = FailRefused
		return probeErr
	}

	if strings.Contains(errStr, "no route to host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "host is down") {
		probeErr.Reason = FailUnreachable
		return probeErr
	}

	if strings.Contains(errStr, "unable to authenticate") ||
		strings.Contains(errStr, "no supported methods") ||
		strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "authentication failed") {
		probeErr.Reason = FailAuth
		return probeErr
	}

	return probeErr
}
