package segment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"time"

	"github.com/webfly/logogen/internal/raster"
)

// DefaultTimeout bounds one inference call. Overrun is reported as an error
// and the pipeline treats it like any other mask-unavailable condition.
const DefaultTimeout = 60 * time.Second

// CommandEngine runs an external segmentation model as a child process. The
// source image is written to the process as PNG on stdin; the process must
// write the segmented result as PNG on stdout (rembg's `rembg i` contract).
type CommandEngine struct {
	Path    string
	Args    []string
	Timeout time.Duration
}

// NewCommandEngine builds an engine for a command line such as
// ["rembg", "i"]. The command must be resolvable on PATH.
func NewCommandEngine(argv []string, timeout time.Duration) (*CommandEngine, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty segmentation command")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, fmt.Errorf("segmentation command not found: %w", err)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CommandEngine{Path: path, Args: argv[1:], Timeout: timeout}, nil
}

func (e *CommandEngine) Segment(ctx context.Context, r *raster.Raster) (*raster.Raster, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	var in bytes.Buffer
	if err := png.Encode(&in, r.NRGBA()); err != nil {
		return nil, fmt.Errorf("encoding model input: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Path, e.Args...)
	cmd.Stdin = &in
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("segmentation timed out after %s", e.Timeout)
		}
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("segmentation command: %w: %s", err, stderr.String())
		}
		return nil, fmt.Errorf("segmentation command: %w", err)
	}

	img, _, err := image.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("decoding model output: %w", err)
	}
	return Normalize(raster.FromImage(img), r.W, r.H), nil
}
