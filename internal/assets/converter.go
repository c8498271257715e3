package assets

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/lexrender/internal/retry"
)

// Converter re-encodes media formats the output cannot use as they are.
type Converter interface {
	// TargetExt returns the extension src converts to, or false if src is
	// placed unchanged.
	TargetExt(src string) (string, bool)
	Convert(ctx context.Context, src, dst string) error
}

// DefaultAudioConversions maps uncompressed audio to mp3.
var DefaultAudioConversions = map[string]string{
	".wav":  ".mp3",
	".wave": ".mp3",
	".aif":  ".mp3",
	".aiff": ".mp3",
}

// ExecConverter runs an external encoder such as ffmpeg.
type ExecConverter struct {
	// Command is the encoder binary, looked up on PATH. Defaults to "ffmpeg".
	Command string
	// Args build the argument list; the default suits ffmpeg.
	Args func(src, dst string) []string
	// Conversions maps lowercase source extensions to target extensions.
	Conversions map[string]string
	// Retry governs re-running a failed encode. The zero value runs once.
	Retry retry.Policy
}

// NewExecConverter returns an ffmpeg-style converter for the default audio
// conversions.
func NewExecConverter(command string) *ExecConverter {
	if command == "" {
		command = "ffmpeg"
	}
	return &ExecConverter{Command: command, Conversions: DefaultAudioConversions}
}

func (c *ExecConverter) TargetExt(src string) (string, bool) {
	ext, ok := c.Conversions[strings.ToLower(filepath.Ext(src))]
	return ext, ok
}

func (c *ExecConverter) Convert(ctx context.Context, src, dst string) error {
	bin, err := exec.LookPath(c.Command)
	if err != nil {
		return fmt.Errorf("converter %q not found: %w", c.Command, err)
	}
	args := []string{"-y", "-loglevel", "error", "-i", src, dst}
	if c.Args != nil {
		args = c.Args(src, dst)
	}
	return retry.Do(ctx, c.Retry, func(ctx context.Context) error {
		// #nosec G204 -- the binary comes from configuration and exec.LookPath.
		cmd := exec.CommandContext(ctx, bin, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s failed: %w: %s", c.Command, err, strings.TrimSpace(stderr.String()))
		}
		return nil
	})
}
