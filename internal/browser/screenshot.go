package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotPath names the failure screenshot of scenarioID taken at at:
// <dir>/<scenarioID>_FAILED_<epochMillis>.png
func ScreenshotPath(dir, scenarioID string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_FAILED_%d.png", scenarioID, at.UnixMilli()))
}

// CaptureFailure writes a full-page screenshot of page into dir and returns
// its path.
func CaptureFailure(page playwright.Page, dir, scenarioID string, at time.Time) (string, error) {
	if page == nil {
		return "", fmt.Errorf("no page to capture")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	path := ScreenshotPath(dir, scenarioID, at)
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}
	return path, nil
}
