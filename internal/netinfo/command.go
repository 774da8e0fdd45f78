package netinfo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/henri123lemoine/geokit/internal/debug"
)

// ErrUnsupportedOS is returned when no adapter command is known for the OS.
var ErrUnsupportedOS = errors.New("OS not supported")

// Command is a platform command and the parser for its output.
type Command struct {
	Name  string
	Args  []string
	Parse func(output string) []Adapter
}

// String returns the command line.
func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// CommandFor returns the adapter command for a GOOS value.
func CommandFor(goos string) (Command, error) {
	switch goos {
	case "windows":
		return Command{Name: "ipconfig", Args: []string{"/all"}, Parse: ParseIPConfig}, nil
	case "linux":
		return Command{Name: "ip", Args: []string{"a"}, Parse: ParseIPAddr}, nil
	case "darwin", "freebsd", "openbsd", "netbsd":
		return Command{Name: "ifconfig", Parse: ParseIfconfig}, nil
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnsupportedOS, goos)
}

// CommandSource scrapes adapter information from a platform command.
type CommandSource struct {
	// GOOS overrides runtime.GOOS when set.
	GOOS string

	// run executes the command; nil means runCommand.
	run func(ctx context.Context, name string, args ...string) (string, error)
}

// Name implements Source.
func (CommandSource) Name() string { return "command" }

// Adapters implements Source.
func (s CommandSource) Adapters(ctx context.Context) ([]Adapter, error) {
	goos := s.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}
	cmd, err := CommandFor(goos)
	if err != nil {
		return nil, err
	}

	run := s.run
	if run == nil {
		run = runCommand
	}

	defer debug.Timed("netinfo.CommandSource " + cmd.String())()
	output, err := run(ctx, cmd.Name, cmd.Args...)
	if err != nil {
		return nil, err
	}
	return cmd.Parse(output), nil
}

// runCommand executes a command and returns its stdout.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("command failed: %s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
