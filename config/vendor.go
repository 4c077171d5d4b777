package config

import (
	"fmt"
	"math/rand"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	defaultVendorURL       = "https://www.immobiliare.it/agenzie-immobiliari/12328/nicoletta-zaggia-padova/"
	defaultListingMarker   = "immobiliare.it/annunci/"
	defaultDetailURLPrefix = "https://www.immobiliare.it/annunci/"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:109.0) Gecko/20100101 Firefox/119.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
}

var defaultBaseHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
	"Cache-Control":             "max-age=0",
}

// Vendor describes the single listing source. It is built once at startup
// and passed by value; nothing mutates it afterwards.
type Vendor struct {
	URL             string            `yaml:"url"`
	ListingMarker   string            `yaml:"listing_marker"`
	DetailURLPrefix string            `yaml:"detail_url_prefix"`
	UserAgents      []string          `yaml:"user_agents"`
	BaseHeaders     map[string]string `yaml:"base_headers"`

	origin string
}

// DefaultVendor returns the built-in vendor settings.
func DefaultVendor() Vendor {
	v, _ := newVendor(Vendor{})
	return v
}

// LoadVendor builds the vendor settings from the built-in defaults, an
// optional YAML file and an optional URL override, in that order.
func LoadVendor(path, urlOverride string) (Vendor, error) {
	var v Vendor
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Vendor{}, fmt.Errorf("config: read vendor file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &v); err != nil {
			return Vendor{}, fmt.Errorf("config: parse vendor file %q: %w", path, err)
		}
	}
	if urlOverride != "" {
		v.URL = urlOverride
	}
	return newVendor(v)
}

func newVendor(v Vendor) (Vendor, error) {
	if v.URL == "" {
		v.URL = defaultVendorURL
	}
	if v.ListingMarker == "" {
		v.ListingMarker = defaultListingMarker
	}
	if v.DetailURLPrefix == "" {
		v.DetailURLPrefix = defaultDetailURLPrefix
	}
	if len(v.UserAgents) == 0 {
		v.UserAgents = append([]string(nil), defaultUserAgents...)
	}
	headers := make(map[string]string, len(defaultBaseHeaders)+len(v.BaseHeaders))
	for k, val := range defaultBaseHeaders {
		headers[k] = val
	}
	for k, val := range v.BaseHeaders {
		headers[k] = val
	}
	v.BaseHeaders = headers

	u, err := url.Parse(v.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Vendor{}, fmt.Errorf("config: invalid vendor url %q", v.URL)
	}
	v.origin = u.Scheme + "://" + u.Host
	return v, nil
}

// Origin returns scheme://host of the vendor page.
func (v Vendor) Origin() string { return v.origin }

// RandomUserAgent picks one of the configured user agents.
func (v Vendor) RandomUserAgent() string {
	return v.UserAgents[rand.Intn(len(v.UserAgents))]
}

// IsDetailURL reports whether raw points at one of the vendor's listing pages.
func (v Vendor) IsDetailURL(raw string) bool {
	return strings.HasPrefix(raw, v.DetailURLPrefix)
}

// DetailHeaders returns the request headers for a detail fetch: the base
// set, a rotated user agent and the vendor page as referer.
func (v Vendor) DetailHeaders() map[string]string {
	h := make(map[string]string, len(v.BaseHeaders)+2)
	for k, val := range v.BaseHeaders {
		h[k] = val
	}
	h["User-Agent"] = v.RandomUserAgent()
	h["Referer"] = v.URL
	return h
}
