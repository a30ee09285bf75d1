package parabanktest

import (
	"os"
	"testing"

	"github.com/parabank-qa/parabank-e2e/internal/browser"
	"github.com/parabank-qa/parabank-e2e/internal/config"
)

// Config returns a headless chromium configuration pointing at baseURL with
// screenshots written below dir.
func Config(baseURL, dir string) *config.Config {
	cfg := &config.Config{BaseURL: baseURL}
	cfg.Browser.Engine = config.EngineChromium
	cfg.Browser.Headless = os.Getenv("HEADLESS") != "false"
	cfg.Browser.Install = os.Getenv("PLAYWRIGHT_PREINSTALLED") != "1"
	cfg.Browser.Viewport.Width = 1280
	cfg.Browser.Viewport.Height = 720
	cfg.Reports.Screenshots = true
	cfg.Reports.ScreenshotDir = dir
	return cfg
}

// NewSession starts a browser session for cfg and registers its teardown.
// The test is skipped when SKIP_BROWSER=true or Playwright cannot start.
func NewSession(t testing.TB, cfg *config.Config) *browser.Session {
	t.Helper()
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}
	s := browser.NewSession(cfg)
	if err := s.Setup(); err != nil {
		t.Skipf("Could not start Playwright: %v (browsers may not be installed)", err)
	}
	t.Cleanup(s.TearDown)
	return s
}
