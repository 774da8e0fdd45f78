// Package exec handles launching external programs.
package exec

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/henri123lemoine/geokit/internal/debug"
	"github.com/henri123lemoine/geokit/internal/launcher"
)

// ErrNotFound is returned when the file to launch no longer exists.
var ErrNotFound = errors.New("file not found")

// directExtensions are started as programs on Windows.
var directExtensions = []string{".exe", ".bat", ".com", ".cmd"}

// Launch starts the entry without waiting for it to exit.
//
// With an empty command the file is started directly when it is a
// program, otherwise it is handed to the OS opener. A non-empty command
// is a template run through the shell; {path}, {name} and {folder} are
// expanded and shell-quoted.
func Launch(command string, e launcher.Entry) error {
	if _, err := os.Stat(e.Path); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, e.Path)
	}

	cmd := BuildCommand(command, e, runtime.GOOS)
	debug.Log("launch: %s", strings.Join(cmd.Args, " "))

	// Detach from the TUI's terminal.
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	// Start the process but don't wait for it
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

// BuildCommand returns the command that launches e on goos.
func BuildCommand(command string, e launcher.Entry, goos string) *exec.Cmd {
	var cmd *exec.Cmd
	switch {
	case command != "":
		expanded := expandTemplate(command, e, goos)
		if goos == "windows" {
			cmd = exec.Command("cmd", "/C", expanded)
		} else {
			cmd = exec.Command("sh", "-c", expanded)
		}
	case isDirect(e, goos):
		cmd = exec.Command(e.Path)
	default:
		cmd = opener(e.Path, goos)
	}
	cmd.Dir = strings.TrimRight(e.Folder, `/\`)
	if cmd.Dir == "" {
		cmd.Dir = "."
	}
	return cmd
}

// isDirect reports whether e should be executed rather than opened.
func isDirect(e launcher.Entry, goos string) bool {
	ext := e.Ext()
	if goos == "windows" {
		for _, d := range directExtensions {
			if ext == d {
				return true
			}
		}
		return false
	}
	// Elsewhere only files with an exec bit run directly; .exe and friends
	// go to the opener, which may know a compatibility layer.
	info, err := os.Stat(e.Path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// opener returns the OS "open with default application" command.
func opener(path, goos string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("cmd", "/C", "start", "", path)
	case "darwin":
		return exec.Command("open", path)
	default:
		return exec.Command("xdg-open", path)
	}
}

// expandTemplate expands template variables in the command.
func expandTemplate(command string, e launcher.Entry, goos string) string {
	quote := shellQuote
	if goos == "windows" {
		quote = cmdQuote
	}

	// One pass, so values containing "{name}" and the like stay literal.
	r := strings.NewReplacer(
		"{path}", quote(e.Path),
		"{name}", quote(e.Name),
		"{folder}", quote(strings.TrimRight(e.Folder, `/\`)),
	)
	return r.Replace(command)
}

// shellQuote quotes s for POSIX sh when it contains special characters.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`!*?[]{}()<>|&;#~") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// cmdQuote quotes s for cmd.exe.
func cmdQuote(s string) string {
	if !strings.ContainsAny(s, " \t&()^|<>%!") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
