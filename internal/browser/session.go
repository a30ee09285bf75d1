// Package browser owns the Playwright resources a scenario runs against.
package browser

import (
	"errors"
	"fmt"
	"log"

	"github.com/playwright-community/playwright-go"

	"github.com/parabank-qa/parabank-e2e/internal/config"
)

// Session is one exclusively owned browser page together with the driver,
// browser and context backing it. A Session must not be shared between
// concurrently running scenarios.
type Session struct {
	Playwright *playwright.Playwright
	Browser    playwright.Browser
	Context    playwright.BrowserContext
	Page       playwright.Page
	Config     *config.Config
}

// NewSession creates a session for cfg. Nothing is started until Setup.
func NewSession(cfg *config.Config) *Session {
	return &Session{Config: cfg}
}

// Setup starts Playwright, launches the configured browser and opens a page.
// On error the partially created resources are released.
func (s *Session) Setup() (err error) {
	defer func() {
		if err != nil {
			s.TearDown()
		}
	}()

	engine := s.Config.Browser.Engine
	if s.Config.Browser.Install {
		if err = Install(engine); err != nil {
			return err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("could not start playwright: %w", err)
	}
	s.Playwright = pw

	browserType, err := s.browserType(engine)
	if err != nil {
		return err
	}
	b, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.Config.Browser.Headless),
		SlowMo:   playwright.Float(float64(s.Config.Browser.SlowMo.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("could not launch %s: %w", engine, err)
	}
	s.Browser = b

	opts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.Config.Browser.Viewport.Width,
			Height: s.Config.Browser.Viewport.Height,
		},
	}
	if s.Config.Reports.Videos {
		opts.RecordVideo = &playwright.RecordVideo{Dir: s.Config.Reports.VideoDir}
	}
	ctx, err := b.NewContext(opts)
	if err != nil {
		return fmt.Errorf("could not create context: %w", err)
	}
	s.Context = ctx

	page, err := ctx.NewPage()
	if err != nil {
		return fmt.Errorf("could not create page: %w", err)
	}
	s.Page = page

	if ms := s.Config.Browser.TimeoutMillis(); ms > 0 {
		page.SetDefaultTimeout(ms)
	}
	return nil
}

func (s *Session) browserType(engine string) (playwright.BrowserType, error) {
	switch engine {
	case config.EngineChromium:
		return s.Playwright.Chromium, nil
	case config.EngineFirefox:
		return s.Playwright.Firefox, nil
	case config.EngineWebKit:
		return s.Playwright.WebKit, nil
	}
	return nil, fmt.Errorf("unsupported browser engine %q", engine)
}

// TearDown closes every resource the session holds. It tolerates partially
// initialised sessions and may be called more than once.
func (s *Session) TearDown() {
	if s.Page != nil {
		if err := s.Page.Close(); err != nil {
			log.Printf("[browser] close page: %v", err)
		}
		s.Page = nil
	}
	if s.Context != nil {
		_ = s.Context.Close()
		s.Context = nil
	}
	if s.Browser != nil {
		_ = s.Browser.Close()
		s.Browser = nil
	}
	if s.Playwright != nil {
		if err := s.Playwright.Stop(); err != nil {
			log.Printf("[browser] stop playwright: %v", err)
		}
		s.Playwright = nil
	}
}

// Run acquires a session for cfg, hands its page to fn and releases the
// session on every exit path. The error from fn is returned unchanged.
func Run(cfg *config.Config, fn func(page playwright.Page) error) error {
	s := NewSession(cfg)
	if err := s.Setup(); err != nil {
		return err
	}
	defer s.TearDown()
	return fn(s.Page)
}

// Install downloads the Playwright driver and the given browser engine.
func Install(engine string) error {
	if engine == "" {
		return errors.New("no browser engine given")
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{engine}}); err != nil {
		return fmt.Errorf("could not install playwright %s: %w", engine, err)
	}
	return nil
}
