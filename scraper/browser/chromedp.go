// Package browser renders JavaScript-driven pages with headless Chrome.
package browser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"listing-monitor/apperr"
	"listing-monitor/scraper"
	"listing-monitor/utils"
)

// ChromeRenderer launches a headless Chrome per render and tears it down
// before returning.
type ChromeRenderer struct {
	logger          *utils.Logger
	opts            []chromedp.ExecAllocatorOption
	navTimeout      time.Duration
	selectorTimeout time.Duration
}

// NewChromeRenderer prepares a renderer. chromeBin may be empty, in which
// case the usual install locations are searched.
func NewChromeRenderer(chromeBin string, navTimeout, selectorTimeout time.Duration, logger *utils.Logger) *ChromeRenderer {
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	logger.Info("[browser] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("ignore-certificate-errors", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	return &ChromeRenderer{
		logger:          logger,
		opts:            opts,
		navTimeout:      navTimeout,
		selectorTimeout: selectorTimeout,
	}
}

// Render implements scraper.Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, req scraper.RenderRequest) (string, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// The first Run allocates the browser; it must not carry a child deadline
	// or the browser would die with it.
	if err := chromedp.Run(browserCtx); err != nil {
		return "", apperr.Timeout("render", fmt.Errorf("start browser: %w", err))
	}

	blocked := make([]*fetch.RequestPattern, 0, len(req.BlockedTypes))
	for _, t := range req.BlockedTypes {
		blocked = append(blocked, &fetch.RequestPattern{
			URLPattern:   "*",
			ResourceType: network.ResourceType(t),
			RequestStage: fetch.RequestStageRequest,
		})
	}
	if len(blocked) > 0 {
		// Only blocked resource types are paused, so every paused request fails.
		chromedp.ListenTarget(browserCtx, func(ev interface{}) {
			if paused, ok := ev.(*fetch.EventRequestPaused); ok {
				go func() {
					_ = chromedp.Run(browserCtx, fetch.FailRequest(paused.RequestID, network.ErrorReasonBlockedByClient))
				}()
			}
		})
	}

	var setup chromedp.Tasks
	if req.UserAgent != "" {
		setup = append(setup, emulation.SetUserAgentOverride(req.UserAgent))
	}
	if len(blocked) > 0 {
		setup = append(setup, fetch.Enable().WithPatterns(blocked))
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, r.navTimeout)
	defer cancelNav()

	r.logger.Debug("[browser] Navigating to %s", req.URL)
	if err := chromedp.Run(navCtx, setup, chromedp.Navigate(req.URL)); err != nil {
		return "", apperr.Timeout("render", fmt.Errorf("navigate %s: %w", req.URL, err))
	}

	waitCtx, cancelWait := context.WithTimeout(browserCtx, r.selectorTimeout)
	defer cancelWait()

	var html string
	actions := chromedp.Tasks{}
	if req.WaitSelector != "" {
		actions = append(actions, chromedp.WaitReady(req.WaitSelector, chromedp.ByQuery))
	}
	actions = append(actions, chromedp.OuterHTML("html", &html, chromedp.ByQuery))

	if err := chromedp.Run(waitCtx, actions); err != nil {
		return "", apperr.Timeout("render", fmt.Errorf("wait for %q: %w", req.WaitSelector, err))
	}

	r.logger.Debug("[browser] Rendered %s (%d bytes)", req.URL, len(html))
	return html, nil
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
