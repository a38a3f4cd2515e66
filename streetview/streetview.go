// Package streetview fetches street-level stills for camera waypoints.
// Fetched images are cached in memory and optionally on disk, keyed by
// position, heading, and camera parameters, so reruns of the same route
// cost no additional quota.
package streetview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"drivelapse/frame"
	"drivelapse/route"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/streetview"

// Config holds camera and fetch parameters. Zero fields take defaults
// in New.
type Config struct {
	APIKey   string
	BaseURL  string
	CacheDir string // disk cache for fetched images; empty disables
	Width    int    // image width in pixels
	Height   int    // image height in pixels
	FOV      int    // horizontal field of view in degrees
	Pitch    int    // camera tilt in degrees
	Workers  int    // concurrent fetches during Prefetch
	Throttle time.Duration
}

// Client fetches stills. Safe for concurrent use.
type Client struct {
	cfg  Config
	http *http.Client
	mem  sync.Map // cache key -> raw image bytes
}

// New returns a client with defaults filled in: 640x400 images, 90
// degree field of view, four fetch workers.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 400
	}
	if cfg.FOV <= 0 {
		cfg.FOV = 90
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: 30 * time.Second}}
}

// Still fetches the image for one waypoint and converts it into a frame
// of the configured dimensions, rescaling if the provider returned a
// different size.
func (c *Client) Still(ctx context.Context, w route.Waypoint) (frame.Frame, error) {
	data, err := c.imageBytes(ctx, w)
	if err != nil {
		return frame.Frame{}, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return frame.Frame{}, fmt.Errorf("streetview: decode image: %w", err)
	}
	return c.toFrame(img), nil
}

// Prefetch fetches one frame per waypoint with bounded concurrency. The
// returned slice preserves waypoint order regardless of completion
// order. A progress bar tracks the run.
func (c *Client) Prefetch(ctx context.Context, waypoints []route.Waypoint) ([]frame.Frame, error) {
	if len(waypoints) == 0 {
		return nil, nil
	}

	frames := make([]frame.Frame, len(waypoints))
	bar := progressbar.Default(int64(len(waypoints)), "fetching imagery")

	var group errgroup.Group
	group.SetLimit(c.cfg.Workers)
	for i, w := range waypoints {
		i, w := i, w
		group.Go(func() error {
			f, err := c.Still(ctx, w)
			if err != nil {
				return fmt.Errorf("waypoint %d: %w", i, err)
			}
			frames[i] = f
			bar.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	bar.Finish()
	return frames, nil
}

// Metadata reports whether the provider has imagery near the waypoint.
// The metadata endpoint costs no quota, so callers can probe coverage
// before prefetching a whole route.
func (c *Client) Metadata(ctx context.Context, w route.Waypoint) (bool, error) {
	query := url.Values{}
	query.Set("location", fmt.Sprintf("%.6f,%.6f", w.Lat, w.Lng))
	if c.cfg.APIKey != "" {
		query.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/metadata?"+query.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("streetview: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("streetview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("streetview: unexpected status %s", resp.Status)
	}
	var meta struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return false, fmt.Errorf("streetview: decode metadata: %w", err)
	}
	return meta.Status == "OK", nil
}

func (c *Client) toFrame(img image.Image) frame.Frame {
	b := img.Bounds()
	if b.Dx() == c.cfg.Width && b.Dy() == c.cfg.Height {
		return frame.FromImage(img)
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.cfg.Width, c.cfg.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return frame.FromImage(dst)
}

func (c *Client) imageBytes(ctx context.Context, w route.Waypoint) ([]byte, error) {
	key := c.cacheKey(w)
	if cached, ok := c.mem.Load(key); ok {
		return cached.([]byte), nil
	}
	if c.cfg.CacheDir != "" {
		if data, err := os.ReadFile(filepath.Join(c.cfg.CacheDir, key)); err == nil {
			c.mem.Store(key, data)
			return data, nil
		}
	}

	data, err := c.fetch(ctx, w)
	if err != nil {
		return nil, err
	}

	c.mem.Store(key, data)
	if c.cfg.CacheDir != "" {
		if err := os.MkdirAll(c.cfg.CacheDir, 0o755); err != nil {
			slog.Warn("street view cache dir", "err", err)
		} else if err := os.WriteFile(filepath.Join(c.cfg.CacheDir, key), data, 0o644); err != nil {
			slog.Warn("street view cache write", "err", err)
		}
	}
	return data, nil
}

func (c *Client) cacheKey(w route.Waypoint) string {
	return fmt.Sprintf("sv_%.6f_%.6f_h%.1f_f%d_p%d_%dx%d.img",
		w.Lat, w.Lng, w.Heading, c.cfg.FOV, c.cfg.Pitch, c.cfg.Width, c.cfg.Height)
}

func (c *Client) fetch(ctx context.Context, w route.Waypoint) ([]byte, error) {
	if c.cfg.Throttle > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.cfg.Throttle):
		}
	}

	query := url.Values{}
	query.Set("size", fmt.Sprintf("%dx%d", c.cfg.Width, c.cfg.Height))
	query.Set("location", fmt.Sprintf("%.6f,%.6f", w.Lat, w.Lng))
	query.Set("heading", fmt.Sprintf("%.2f", w.Heading))
	query.Set("fov", strconv.Itoa(c.cfg.FOV))
	query.Set("pitch", strconv.Itoa(c.cfg.Pitch))
	query.Set("source", "outdoor")
	if c.cfg.APIKey != "" {
		query.Set("key", c.cfg.APIKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("streetview: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("streetview: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("streetview: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("streetview: read body: %w", err)
	}
	return data, nil
}
