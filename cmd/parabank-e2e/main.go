package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"

	"github.com/parabank-qa/parabank-e2e/internal/browser"
	"github.com/parabank-qa/parabank-e2e/internal/config"
	"github.com/parabank-qa/parabank-e2e/internal/registration"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "parabank-e2e",
	Short: "ParaBank end-to-end registration check",
	Long: `Drives the ParaBank demo bank through customer self-registration in a
real browser and verifies the created customer is greeted by name.

A failed run leaves a full-page screenshot under reports/screenshots.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFlag        string
	baseURLFlag       string
	headedFlag        bool
	screenshotDirFlag string
	scenarioIDFlag    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the registration scenario once",
	RunE:  runScenario,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the configured ParaBank deployment is reachable",
	RunE:  runCheck,
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the Playwright driver and the configured browser",
	RunE:  runInstall,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("parabank-e2e %s\n", rootCmd.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a YAML config file (default: parabank.yaml in . or ./configs)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Override the ParaBank base URL")

	runCmd.Flags().BoolVar(&headedFlag, "headed", false, "Show the browser window")
	runCmd.Flags().StringVar(&screenshotDirFlag, "screenshot-dir", "", "Directory for failure screenshots")
	runCmd.Flags().StringVar(&scenarioIDFlag, "scenario-id", registration.DefaultScenarioID, "Identifier used in logs and screenshot names")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if headedFlag {
		cfg.Browser.Headless = false
	}
	if screenshotDirFlag != "" {
		cfg.Reports.ScreenshotDir = screenshotDirFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scenario := registration.New(cfg)
	scenario.ID = scenarioIDFlag

	var res registration.Result
	err = browser.Run(cfg, func(page playwright.Page) error {
		var runErr error
		res, runErr = scenario.Run(page)
		return runErr
	})
	if err != nil {
		var f *registration.ScenarioFailure
		if errors.As(err, &f) && f.Screenshot != "" {
			fmt.Fprintf(os.Stderr, "Screenshot: %s\n", f.Screenshot)
		}
		return err
	}
	fmt.Printf("✅ %s passed in %s (username %s, run %s)\n", scenario.ID, res.Duration.Round(time.Millisecond), res.Username, res.RunID)
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	res, err := config.Reachable(ctx, cfg.BaseURL)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s responded %d in %.0fms\n", res.URL, res.StatusCode, res.Elapsed.Seconds()*1000)
	return nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	fmt.Printf("🔧 Installing Playwright with %s...\n", cfg.Browser.Engine)
	if err := browser.Install(cfg.Browser.Engine); err != nil {
		return err
	}
	fmt.Println("✅ Playwright installed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
