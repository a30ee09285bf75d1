package browser_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parabank-qa/parabank-e2e/internal/browser"
	"github.com/parabank-qa/parabank-e2e/internal/config"
	"github.com/parabank-qa/parabank-e2e/internal/parabanktest"
)

func TestScreenshotPath(t *testing.T) {
	at := time.UnixMilli(1718000123456)
	got := browser.ScreenshotPath("reports/screenshots", "TC001", at)
	assert.Equal(t, filepath.Join("reports", "screenshots", "TC001_FAILED_1718000123456.png"), got)
}

func TestTearDownWithoutSetup(t *testing.T) {
	s := browser.NewSession(&config.Config{})
	assert.NotPanics(t, s.TearDown)
	assert.NotPanics(t, s.TearDown)
}

func TestCaptureFailureWithoutPage(t *testing.T) {
	_, err := browser.CaptureFailure(nil, t.TempDir(), "TC001", time.Now())
	assert.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	srv, _, base := parabanktest.NewServer(parabanktest.Options{})
	defer srv.Close()

	dir := filepath.Join(t.TempDir(), "nested", "screenshots")
	cfg := parabanktest.Config(base, dir)
	s := parabanktest.NewSession(t, cfg)
	require.NotNil(t, s.Page)

	_, err := s.Page.Goto(cfg.HomeURL())
	require.NoError(t, err)

	at := time.UnixMilli(1718000000001)
	path, err := browser.CaptureFailure(s.Page, dir, "TC001", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "TC001_FAILED_1718000000001.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	s.TearDown()
	assert.Nil(t, s.Page)
	assert.Nil(t, s.Playwright)
}

func TestRunReleasesSession(t *testing.T) {
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}
	srv, _, base := parabanktest.NewServer(parabanktest.Options{})
	defer srv.Close()
	cfg := parabanktest.Config(base, t.TempDir())

	var seen playwright.Page
	err := browser.Run(cfg, func(page playwright.Page) error {
		seen = page
		_, err := page.Goto(cfg.HomeURL())
		return err
	})
	if err != nil && seen == nil {
		t.Skipf("Could not start Playwright: %v", err)
	}
	require.NoError(t, err)
	assert.True(t, seen.IsClosed(), "page is closed once Run returns")
}
