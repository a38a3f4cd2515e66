package encode

import (
	"bytes"
	"image/gif"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drivelapse/frame"
)

func solid(w, h int, r, g, b byte) frame.Frame {
	f := frame.New(w, h)
	for i := 0; i < len(f.Pixels); i += 4 {
		f.Pixels[i+0] = r
		f.Pixels[i+1] = g
		f.Pixels[i+2] = b
		f.Pixels[i+3] = 255
	}
	return f
}

func TestDelayCentiseconds(t *testing.T) {
	tests := []struct {
		name          string
		frameRate     int
		interpolation int
		want          int
	}{
		{name: "ten fps", frameRate: 10, interpolation: 1, want: 10},
		{name: "interpolation shortens delay", frameRate: 10, interpolation: 2, want: 5},
		{name: "rounded", frameRate: 30, interpolation: 2, want: 2},
		{name: "clamped to player minimum", frameRate: 100, interpolation: 1, want: 2},
		{name: "degenerate inputs fall back", frameRate: 0, interpolation: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DelayCentiseconds(tt.frameRate, tt.interpolation))
		})
	}
}

func TestGIFRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewGIF(&buf, 10, 2)

	frames := []frame.Frame{
		solid(8, 6, 250, 10, 10),
		solid(8, 6, 10, 250, 10),
		solid(8, 6, 10, 10, 250),
	}
	require.NoError(t, WriteSequence(w, frames))

	decoded, err := gif.DecodeAll(&buf)
	require.NoError(t, err)

	require.Len(t, decoded.Image, 3)
	assert.Equal(t, 0, decoded.LoopCount, "loops forever")
	for i, img := range decoded.Image {
		assert.Equal(t, 8, img.Bounds().Dx(), "frame %d", i)
		assert.Equal(t, 6, img.Bounds().Dy(), "frame %d", i)
		assert.Equal(t, 5, decoded.Delay[i], "frame %d", i)
	}

	// Palettization keeps the dominant channel recognizable.
	r, g, _, _ := decoded.Image[0].At(4, 3).RGBA()
	assert.Greater(t, r>>8, uint32(180))
	assert.Less(t, g>>8, uint32(120))
}

func TestGIFRejectsBadFrame(t *testing.T) {
	w := NewGIF(&bytes.Buffer{}, 10, 1)

	err := w.Add(frame.Frame{Pixels: make([]byte, 3), Width: 2, Height: 2})
	require.Error(t, err)

	var mismatch *frame.BufferMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestGIFCloseWithoutFrames(t *testing.T) {
	w := NewGIF(&bytes.Buffer{}, 10, 1)
	assert.Error(t, w.Close())
}

func TestVideoMissingBinary(t *testing.T) {
	// An empty PATH guarantees ffmpeg cannot be resolved.
	t.Setenv("PATH", t.TempDir())

	_, err := NewVideo(t.TempDir()+"/out.mp4", 10, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg")
}
