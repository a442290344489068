package commentparser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/leapstack-labs/capilint/pkg/core"
)

// DefaultTimeout bounds one extractor invocation.
const DefaultTimeout = 10 * time.Second

// Command runs an external extractor program once per comment. The comment
// is passed as the last argument; the program prints a JSON array of blocks:
//
//	[{"description": "...", "tags": [{"tag": "param", "name": "x", "description": "..."}]}]
type Command struct {
	name    string
	args    []string
	timeout time.Duration
}

// NewCommand builds a Command from a command line such as
// "node ./comment_parser.js". Arguments are split on whitespace.
func NewCommand(commandLine string, timeout time.Duration) (*Command, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("extractor command is empty")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Command{name: fields[0], args: fields[1:], timeout: timeout}, nil
}

// String returns the command line.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Extract runs the program and decodes its output.
func (c *Command) Extract(ctx context.Context, comment string) ([]core.CommentBlock, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string{}, c.args...), comment)
	cmd := exec.CommandContext(ctx, c.name, args...) //nolint:gosec // command comes from user configuration
	cmd.WaitDelay = time.Second

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("extractor %s: %w", c.name, ctx.Err())
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("extractor %s: %w: %s", c.name, err, msg)
		}
		return nil, fmt.Errorf("extractor %s: %w", c.name, err)
	}

	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return nil, nil
	}
	var blocks []core.CommentBlock
	if err := json.Unmarshal(out, &blocks); err != nil {
		return nil, fmt.Errorf("extractor %s: decode output: %w", c.name, err)
	}
	return blocks, nil
}
