// Package clipboard writes finished summaries to the system clipboard or a file.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrNoClipboard is returned when no clipboard command is installed.
var ErrNoClipboard = errors.New("no clipboard command found")

// Sink receives the text to copy.
type Sink interface {
	Write(ctx context.Context, text string) error
}

// candidates are tried in order; the first one on PATH wins.
var candidates = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// CommandSink pipes text into a clipboard command's stdin.
type CommandSink struct {
	command  []string
	lookPath func(string) (string, error)
}

// NewCommandSink uses command when given, otherwise the first installed
// candidate found at write time.
func NewCommandSink(command []string) *CommandSink {
	return &CommandSink{command: command, lookPath: exec.LookPath}
}

func (s *CommandSink) resolve() ([]string, error) {
	if len(s.command) > 0 {
		return s.command, nil
	}
	for _, c := range candidates {
		if _, err := s.lookPath(c[0]); err == nil {
			return c, nil
		}
	}
	return nil, ErrNoClipboard
}

func (s *CommandSink) Write(ctx context.Context, text string) error {
	argv, err := s.resolve()
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("command '%s' failed: %w\nstderr: %s", argv[0], err, msg)
		}
		return fmt.Errorf("command '%s' failed: %w", argv[0], err)
	}
	return nil
}

// FileSink writes the text to a file, replacing its contents. "-" means stdout.
type FileSink struct {
	Path string
}

func (s FileSink) Write(_ context.Context, text string) error {
	if s.Path == "-" {
		_, err := fmt.Fprintln(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(s.Path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
