// Package launcher renders command templates against a resolved host and
// runs them with the user's terminal attached. It backs both the default
// "press enter, get an ssh session" flow and the session start/end hooks.
package launcher

import (
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"sshp/internal/errors"
	"sshp/internal/logger"
	"sshp/internal/sshconfig"
	"sshp/internal/util"
)

var log = logger.NewEnvLogger("[launcher]")

// TemplateContext is what a command template renders against. Aliases is
// pre-joined so templates can splice it into a flat argument.
type TemplateContext struct {
	Name         string
	Aliases      string
	User         string
	Destination  string
	Port         string
	ProxyCommand string
}

// contextFor builds the template context for a resolved host.
func contextFor(host sshconfig.Host) TemplateContext {
	return TemplateContext{
		Name:         host.Name,
		Aliases:      util.JoinOrDefault(host.Aliases, ""),
		User:         host.User,
		Destination:  host.Destination,
		Port:         host.Port,
		ProxyCommand: host.ProxyCommand,
	}
}

// Render expands a command template for the given host.
func Render(tmpl string, host sshconfig.Host) (string, error) {
	t, err := template.New("command").Parse(tmpl)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Can't parse command template: "+tmpl,
			`Templates use Go template syntax, e.g. ssh "{{.Name}}"`)
	}

	var b strings.Builder
	if err := t.Execute(&b, contextFor(host)); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Can't render command template: "+tmpl,
			"Valid fields are .Name, .Aliases, .User, .Destination, .Port, .ProxyCommand")
	}
	return b.String(), nil
}

// Run renders the template for the host, announces it, and executes it with
// stdin/stdout/stderr inherited so interactive sessions work. The child's
// exit code is returned; a non-zero code is not an error here, the CLI layer
// decides whether to propagate it.
func Run(tmpl string, host sshconfig.Host, stdout, stderr io.Writer) (int, error) {
	rendered, err := Render(tmpl, host)
	if err != nil {
		return -1, err
	}

	args, err := splitCommand(rendered)
	if err != nil {
		return -1, err
	}
	if len(args) == 0 {
		return -1, errors.New(errors.ErrExec,
			"Command template rendered to nothing: "+tmpl,
			"Make sure the template produces at least a command name")
	}

	log.Debug("running: %s", rendered)

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if runErr := cmd.Run(); runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run: "+rendered,
			"Make sure the command exists and is executable.")
	}

	return 0, nil
}

// Session runs the main command template plus optional hook templates before
// and after it. Hook failures abort with an error; the main command's exit
// code comes back as an ExitError so the process can mirror it.
type Session struct {
	Template        string
	OnStartTemplate string
	OnEndTemplate   string
}

// Launch runs the session against the selected host.
func (s Session) Launch(host sshconfig.Host) error {
	if s.OnStartTemplate != "" {
		if code, err := Run(s.OnStartTemplate, host, os.Stdout, os.Stderr); err != nil {
			return err
		} else if code != 0 {
			return errors.NewExitError(code)
		}
	}

	code, err := Run(s.Template, host, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	if s.OnEndTemplate != "" {
		if _, err := Run(s.OnEndTemplate, host, os.Stdout, os.Stderr); err != nil {
			return err
		}
	}

	if code != 0 {
		return errors.NewExitError(code)
	}
	return nil
}

// splitCommand tokenizes a rendered command line with shell-style quoting:
// single quotes take everything literally, double quotes allow backslash
// escapes, and unquoted backslashes escape the next character.
func splitCommand(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inToken := false

	const (
		plain = iota
		single
		double
	)
	state := plain
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false

		case state == single:
			if r == '\'' {
				state = plain
			} else {
				current.WriteRune(r)
			}

		case state == double:
			switch r {
			case '"':
				state = plain
			case '\\':
				escaped = true
			default:
				current.WriteRune(r)
			}

		case r == '\'':
			state = single
			inToken = true

		case r == '"':
			state = double
			inToken = true

		case r == '\\':
			escaped = true
			inToken = true

		case r == ' ' || r == '\t' || r == '\n':
			if inToken {
				args = append(args, current.String())
				current.Reset()
				inToken = false
			}

		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if state != plain || escaped {
		return nil, errors.New(errors.ErrExec,
			"Unbalanced quoting in command: "+line,
			"Check the command template's quotes")
	}

	if inToken {
		args = append(args, current.String())
	}
	return args, nil
}
