package scraper

import "context"

// Resource types a renderer can be asked to drop.
const (
	ResourceImage      = "Image"
	ResourceStylesheet = "Stylesheet"
	ResourceFont       = "Font"
)

// RenderRequest describes one page render.
type RenderRequest struct {
	URL          string
	UserAgent    string
	BlockedTypes []string
	// WaitSelector must be present in the DOM before the markup is read.
	WaitSelector string
}

// Renderer loads a JavaScript-driven page and returns its serialized DOM.
// Implementations release any browser resource before returning, on every
// path.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (string, error)
}

// Fetcher performs a plain GET and returns the body and status. A non-2xx
// status comes back as *apperr.UpstreamHTTPError.
type Fetcher interface {
	Fetch(ctx context.Context, url string, headers map[string]string) ([]byte, int, error)
}
