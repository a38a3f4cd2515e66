package encode

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"drivelapse/frame"
)

// Video streams frames as PNGs into an ffmpeg process, which encodes
// whatever container the output path's extension names. The process
// runs for the lifetime of the writer and finalizes the file on Close.
type Video struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
}

// NewVideo starts ffmpeg writing to path. The input rate is the capture
// frame rate multiplied by the interpolation factor, so enlarged
// sequences play back in the same wall time as the captured one.
func NewVideo(path string, frameRate, interpolation int) (*Video, error) {
	if frameRate < 1 {
		frameRate = 1
	}
	if interpolation < 1 {
		interpolation = 1
	}

	v := &Video{}
	v.cmd = exec.Command("ffmpeg",
		"-y",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-r", strconv.Itoa(frameRate*interpolation),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-movflags", "+faststart",
		path,
	)
	v.cmd.Stderr = &v.stderr

	stdin, err := v.cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode: ffmpeg stdin: %w", err)
	}
	v.stdin = stdin

	if err := v.cmd.Start(); err != nil {
		return nil, fmt.Errorf("encode: start ffmpeg: %w", err)
	}
	return v, nil
}

// Add pipes one frame into the encoder.
func (v *Video) Add(f frame.Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if err := png.Encode(v.stdin, f.Image()); err != nil {
		return fmt.Errorf("encode: write frame: %w", err)
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (v *Video) Close() error {
	if err := v.stdin.Close(); err != nil {
		return fmt.Errorf("encode: close ffmpeg input: %w", err)
	}
	if err := v.cmd.Wait(); err != nil {
		if msg := lastLine(v.stderr.String()); msg != "" {
			return fmt.Errorf("encode: ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("encode: ffmpeg: %w", err)
	}
	return nil
}

// lastLine pulls the final non-empty stderr line, which is where ffmpeg
// puts its actual complaint.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
