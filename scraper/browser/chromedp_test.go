package browser

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"listing-monitor/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary())
}

func TestNewChromeRendererKeepsTimeouts(t *testing.T) {
	r := NewChromeRenderer("/opt/custom/chrome", 45*time.Second, 30*time.Second, utils.NewLoggerTo(io.Discard, "error"))
	assert.Equal(t, 45*time.Second, r.navTimeout)
	assert.Equal(t, 30*time.Second, r.selectorTimeout)
	assert.Greater(t, len(r.opts), 0)
}
