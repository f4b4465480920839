package qr

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultSize = 200

// Gateway renders QR PNGs. It prefers the configured qrserver-compatible
// HTTP API and falls back to local generation when the call fails, so
// certificate output degrades instead of aborting.
type Gateway struct {
	renderAPIURL string
	size         int
	timeout      time.Duration
	httpClient   *http.Client
	logger       *slog.Logger
}

type GatewayConfig struct {
	RenderAPIURL string
	Size         int
	Timeout      time.Duration
}

func NewGateway(config GatewayConfig, logger *slog.Logger) *Gateway {
	size := config.Size
	if size <= 0 {
		size = defaultSize
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Gateway{
		renderAPIURL: config.RenderAPIURL,
		size:         size,
		timeout:      timeout,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// Render returns a PNG encoding of the given text.
func (g *Gateway) Render(ctx context.Context, text string) ([]byte, error) {
	if g.renderAPIURL != "" {
		png, err := g.renderRemote(ctx, text)
		if err == nil {
			return png, nil
		}
		g.logger.Warn("remote QR render failed, falling back to local generation",
			"error", err,
			"render_api_url", g.renderAPIURL)
	}

	png, err := qrcode.Encode(text, qrcode.Medium, g.size)
	if err != nil {
		g.logger.Error("local QR generation failed", "error", err)
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}

func (g *Gateway) renderRemote(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("size", fmt.Sprintf("%dx%d", g.size, g.size))
	params.Set("format", "png")
	params.Set("data", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.renderAPIURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qr render request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr render API returned status %d", resp.StatusCode)
	}

	png, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read qr render response: %w", err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("qr render API returned empty body")
	}

	g.logger.Debug("QR rendered via external API", "bytes", len(png))
	return png, nil
}
