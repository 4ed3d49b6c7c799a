// Package ocr wraps the Tesseract engine (via gosseract) behind a
// Recognizer interface so the text-acquisition stage can be tested
// without a Tesseract install.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"
	"time"

	"github.com/otiai10/gosseract/v2"
)

type Config struct {
	Language    string // tesseract language, e.g. "por"; default "por"
	TessdataDir string // optional tessdata prefix
	PSM         int    // page segmentation mode; 0 = engine default
}

// Recognizer turns a rendered page image into text.
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
	Close() error
}

// Client runs Tesseract through gosseract.
type Client struct {
	cfg    Config
	client *gosseract.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Language == "" {
		cfg.Language = "por"
	}
	c := gosseract.NewClient()
	if err := c.SetLanguage(cfg.Language); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("set ocr language %q: %w", cfg.Language, err)
	}
	if cfg.TessdataDir != "" {
		if err := c.SetTessdataPrefix(cfg.TessdataDir); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("set tessdata dir: %w", err)
		}
	}
	if cfg.PSM > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(cfg.PSM)); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("set page seg mode: %w", err)
		}
	}
	return &Client{cfg: cfg, client: c, logger: logger}, nil
}

// Recognize encodes the image as PNG and runs it through Tesseract.
// The returned text is normalized (whitespace collapsed, line noise
// stripped) and trimmed.
func (c *Client) Recognize(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode page image: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}
	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}

	text = Normalize(text)
	c.logger.Debug("ocr.recognize.ok",
		"language", c.cfg.Language,
		"duration_ms", time.Since(start).Milliseconds(),
		"chars", len(text),
	)
	return strings.TrimSpace(text), nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}
