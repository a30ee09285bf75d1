package registration

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	"github.com/parabank-qa/parabank-e2e/internal/browser"
	"github.com/parabank-qa/parabank-e2e/internal/config"
)

// DefaultScenarioID names the registration test case in logs and
// screenshot file names.
const DefaultScenarioID = "TC001"

var (
	homeTitle     = regexp.MustCompile(`ParaBank.*Welcome.*Online Banking`)
	registerTitle = regexp.MustCompile(`ParaBank.*Register`)
	createdTitle  = regexp.MustCompile(`Customer Created`)
)

const (
	registerLinkName    = "Register"
	submitSelector      = `input[value="Register"]`
	usernameHeading     = "h1.title"
	confirmationText    = "Your account was created successfully"
	leftPanelParagraphs = "div.leftpanel p"
)

// Scenario verifies that a new customer can self-register. A Scenario may be
// run repeatedly but each Run needs its own page.
type Scenario struct {
	ID      string
	BaseURL string
	// ScreenshotDir receives the failure screenshot. Empty disables capture.
	ScreenshotDir string
	// Timeout bounds each assertion. Zero keeps the engine default.
	Timeout time.Duration
	Now     func() time.Time
	Logger  *log.Logger
}

// Result describes a passed run.
type Result struct {
	RunID    string
	Username string
	Duration time.Duration
}

// New builds the registration scenario from cfg.
func New(cfg *config.Config) *Scenario {
	s := &Scenario{
		ID:      DefaultScenarioID,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Browser.Timeout,
		Now:     time.Now,
		Logger:  log.New(os.Stdout, "", log.LstdFlags),
	}
	if cfg.Reports.Screenshots {
		s.ScreenshotDir = cfg.Reports.ScreenshotDir
	}
	return s
}

func (s *Scenario) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// run carries the state of one execution.
type run struct {
	*Scenario
	page    playwright.Page
	expect  playwright.PlaywrightAssertions
	profile Profile
	log     *log.Logger
}

// Run executes the five registration steps on page. Any failure is returned
// as a *ScenarioFailure after a full-page screenshot has been attempted.
func (s *Scenario) Run(page playwright.Page) (res Result, err error) {
	start := s.now()
	runID := uuid.NewString()
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := &run{
		Scenario: s,
		page:     page,
		profile:  NewProfile(GenerateUsername(start)),
		log:      log.New(logger.Writer(), fmt.Sprintf("%s[%s %s] ", logger.Prefix(), s.ID, runID[:8]), logger.Flags()),
	}
	if s.Timeout > 0 {
		r.expect = playwright.NewPlaywrightAssertions(float64(s.Timeout.Milliseconds()))
	} else {
		r.expect = playwright.NewPlaywrightAssertions()
	}

	r.log.Printf("🧪 Starting %s: User Registration Test", s.ID)
	defer func() {
		if err != nil {
			r.onFailure(err)
		}
	}()

	steps := []func() error{r.loadHome, r.openRegistration, r.fillForm, r.submit, r.verify}
	for _, step := range steps {
		if err := step(); err != nil {
			return Result{}, err
		}
	}

	r.log.Printf("🎉 %s PASSED: User registration completed successfully", s.ID)
	return Result{RunID: runID, Username: r.profile.Username, Duration: s.now().Sub(start)}, nil
}

func (r *run) fail(step Step, kind FailureKind, err error) error {
	return &ScenarioFailure{Scenario: r.ID, Step: step, Kind: kind, Cause: err}
}

// onFailure records the failure screenshot. A capture error is logged and
// never replaces the scenario failure.
func (r *run) onFailure(err error) {
	r.log.Printf("❌ %s FAILED: %v", r.ID, err)
	if r.ScreenshotDir == "" {
		return
	}
	path, captureErr := browser.CaptureFailure(r.page, r.ScreenshotDir, r.ID, r.now())
	if captureErr != nil {
		r.log.Printf("⚠️  screenshot not saved: %v", captureErr)
		return
	}
	var f *ScenarioFailure
	if errors.As(err, &f) {
		f.Screenshot = path
	}
	r.log.Printf("📸 Screenshot saved to %s", path)
}

func (r *run) waitForNetworkIdle() error {
	return r.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	})
}

func (r *run) loadHome() error {
	r.log.Printf("📍 Step 1: Navigate to ParaBank homepage")
	if _, err := r.page.Goto(r.BaseURL + "/index.htm"); err != nil {
		return r.fail(StepLoadHome, KindNavigation, err)
	}
	if err := r.waitForNetworkIdle(); err != nil {
		return r.fail(StepLoadHome, KindNavigation, err)
	}
	if err := r.expect.Page(r.page).ToHaveTitle(homeTitle); err != nil {
		return r.fail(StepLoadHome, KindNavigation, err)
	}
	r.log.Printf("✅ Step 1: Successfully navigated to ParaBank homepage")
	return nil
}

func (r *run) openRegistration() error {
	r.log.Printf("📍 Step 2: Click Register link")
	link := r.page.GetByRole(*playwright.AriaRoleLink, playwright.PageGetByRoleOptions{Name: registerLinkName})
	if err := link.WaitFor(playwright.LocatorWaitForOptions{State: playwright.WaitForSelectorStateVisible}); err != nil {
		return r.fail(StepOpenRegistration, KindElement, err)
	}
	if err := link.Click(); err != nil {
		return r.fail(StepOpenRegistration, KindElement, err)
	}
	if err := r.waitForNetworkIdle(); err != nil {
		return r.fail(StepOpenRegistration, KindNavigation, err)
	}
	if err := r.expect.Page(r.page).ToHaveTitle(registerTitle); err != nil {
		return r.fail(StepOpenRegistration, KindNavigation, err)
	}
	r.log.Printf("✅ Step 2: Successfully clicked Register link")
	return nil
}

func (r *run) fillForm() error {
	r.log.Printf("📍 Step 3: Fill registration form")
	for _, f := range r.profile.formFields() {
		if err := r.page.Locator(fmt.Sprintf(`input[id=%q]`, f.ID)).Fill(f.Value); err != nil {
			return r.fail(StepFillForm, KindElement, fmt.Errorf("fill %s: %w", f.ID, err))
		}
	}
	r.log.Printf("✅ Step 3: Filled form with username: %s (%d characters)", r.profile.Username, len(r.profile.Username))
	return nil
}

func (r *run) submit() error {
	r.log.Printf("📍 Step 4: Submit registration form")
	if err := r.page.Locator(submitSelector).Click(); err != nil {
		return r.fail(StepSubmit, KindElement, err)
	}
	if err := r.waitForNetworkIdle(); err != nil {
		return r.fail(StepSubmit, KindNavigation, err)
	}
	r.log.Printf("✅ Step 4: Successfully submitted form")
	return nil
}

func (r *run) verify() error {
	r.log.Printf("📍 Step 5: Verify welcome message")
	if err := r.expect.Page(r.page).ToHaveTitle(createdTitle); err != nil {
		return r.fail(StepVerify, KindAssertion, err)
	}
	heading := r.page.Locator(usernameHeading)
	if err := r.expect.Locator(heading).ToContainText(r.profile.Username); err != nil {
		return r.fail(StepVerify, KindAssertion, err)
	}
	confirmation := r.page.Locator("p").Filter(playwright.LocatorFilterOptions{HasText: confirmationText})
	if err := r.expect.Locator(confirmation).ToBeVisible(); err != nil {
		return r.fail(StepVerify, KindAssertion, err)
	}
	welcome := r.page.Locator(leftPanelParagraphs).First()
	if err := r.expect.Locator(welcome).ToContainText(r.profile.Greeting()); err != nil {
		return r.fail(StepVerify, KindAssertion, err)
	}
	r.log.Printf("✅ Step 5: Successfully verified welcome message for user: %s", r.profile.Username)
	return nil
}
