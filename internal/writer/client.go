package writer

import (
	"context"
	"errors"
	"os/exec"
	"time"

	"takeout/internal/services"
)

var commandContext = exec.CommandContext

// Client defines batch metadata write behaviour. Write submits the given
// media paths to the external tool and returns its combined diagnostic
// output. A non-zero tool exit is not an error by itself — the diagnostics
// decide which files failed — so Write only errors when the tool could not
// run at all.
type Client interface {
	Write(ctx context.Context, paths []string) (string, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithArgs sets the tag arguments passed before the file list. The caller
// decides what metadata gets written; this layer only transports it.
func WithArgs(args []string) Option {
	return func(c *CLI) {
		c.args = append([]string(nil), args...)
	}
}

// WithTimeout bounds a single invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// CLI wraps the exiftool command-line tool.
type CLI struct {
	binary  string
	args    []string
	timeout time.Duration
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:  "exiftool",
		args:    []string{"-overwrite_original"},
		timeout: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Write runs one exiftool invocation over the given paths.
func (c *CLI) Write(ctx context.Context, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", services.Wrap(services.ErrValidation, "writing", "validate inputs", "No files to write", nil)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(c.args)+len(paths))
	args = append(args, c.args...)
	args = append(args, paths...)

	cmd := commandContext(runCtx, c.binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Tool ran and reported failures; the diagnostics carry them.
			return string(output), nil
		}
		if runCtx.Err() != nil {
			return string(output), services.Wrap(services.ErrTimeout, "writing", "run exiftool", "Write tool timed out", runCtx.Err())
		}
		return string(output), services.Wrap(services.ErrExternalTool, "writing", "run exiftool", "Failed to launch write tool", err)
	}
	return string(output), nil
}

var _ Client = (*CLI)(nil)
