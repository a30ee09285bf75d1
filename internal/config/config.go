// Package config resolves the runtime configuration of the ParaBank
// end-to-end runner from defaults, an optional YAML file, a .env file and the
// process environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBaseURL is the public ParaBank demo deployment.
const DefaultBaseURL = "https://parabank.parasoft.com/parabank"

// Supported browser engines.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Config holds all configuration for a scenario run
type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Browser BrowserConfig `mapstructure:"browser"`
	Reports ReportsConfig `mapstructure:"reports"`
}

type BrowserConfig struct {
	Engine   string        `mapstructure:"engine"`
	Headless bool          `mapstructure:"headless"`
	SlowMo   time.Duration `mapstructure:"slow_mo"`
	// Timeout overrides the engine's default wait timeout. Zero keeps the
	// engine default.
	Timeout  time.Duration `mapstructure:"timeout"`
	Install  bool          `mapstructure:"install"`
	Viewport struct {
		Width  int `mapstructure:"width"`
		Height int `mapstructure:"height"`
	} `mapstructure:"viewport"`
}

type ReportsConfig struct {
	Screenshots   bool   `mapstructure:"screenshots"`
	ScreenshotDir string `mapstructure:"screenshot_dir"`
	Videos        bool   `mapstructure:"videos"`
	VideoDir      string `mapstructure:"video_dir"`
}

// legacy environment names kept from the original e2e harness
var legacyEnv = map[string]string{
	"base_url":            "BASE_URL",
	"browser.headless":    "HEADLESS",
	"reports.screenshots": "SCREENSHOTS",
	"reports.videos":      "VIDEOS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("browser.engine", EngineChromium)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", time.Duration(0))
	v.SetDefault("browser.timeout", time.Duration(0))
	v.SetDefault("browser.install", true)
	v.SetDefault("browser.viewport.width", 1280)
	v.SetDefault("browser.viewport.height", 720)
	v.SetDefault("reports.screenshots", true)
	v.SetDefault("reports.screenshot_dir", "reports/screenshots")
	v.SetDefault("reports.videos", false)
	v.SetDefault("reports.video_dir", "reports/videos")
}

// Load builds a Config. configFile may be empty, in which case parabank.yaml
// is looked up in the working directory and ./configs; a missing file is not
// an error.
func Load(configFile string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("parabank")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("PARABANK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		envKey := "PARABANK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, envKey, legacy); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if os.Getenv("PLAYWRIGHT_PREINSTALLED") == "1" {
		cfg.Browser.Install = false
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("[parabank-config] Resolved BaseURL=%s engine=%s headless=%t", cfg.BaseURL, cfg.Browser.Engine, cfg.Browser.Headless)
	return cfg, nil
}

// loadDotEnv copies KEY=VALUE pairs from path into the process environment.
// Variables that are already set take precedence and are not overwritten.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for key, val := range v.AllSettings() {
		name := strings.ToUpper(key)
		s := fmt.Sprint(val)
		if s == "" || os.Getenv(name) != "" {
			continue
		}
		_ = os.Setenv(name, s)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: must be an absolute http(s) URL", c.BaseURL)
	}
	switch c.Browser.Engine {
	case EngineChromium, EngineFirefox, EngineWebKit:
	default:
		return fmt.Errorf("unsupported browser engine %q", c.Browser.Engine)
	}
	if c.Browser.Timeout < 0 {
		return fmt.Errorf("browser.timeout must not be negative, got %s", c.Browser.Timeout)
	}
	if c.Browser.SlowMo < 0 {
		return fmt.Errorf("browser.slow_mo must not be negative, got %s", c.Browser.SlowMo)
	}
	if c.Reports.ScreenshotDir == "" {
		return errors.New("reports.screenshot_dir must not be empty")
	}
	return nil
}

// HomeURL returns the address of the application's landing page.
func (c *Config) HomeURL() string {
	return c.BaseURL + "/index.htm"
}

// TimeoutMillis returns the configured engine timeout in milliseconds, or 0
// when the engine default applies.
func (c *BrowserConfig) TimeoutMillis() float64 {
	return float64(c.Timeout.Milliseconds())
}
