package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone   = "UTC"
	defaultStartDate  = "2025-09-18"
	defaultRevalidate = 60 * time.Second
	dateLayout        = "2006-01-02"
	defaultSheetURL   = "https://docs.google.com/spreadsheets/d/1kG5tVKYaz6Wny2wIZKmbhloD_3Bwl5NeqsPNNGxcHIA/export?format=csv"
)

// Config holds high-level settings required across the application.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Campaign CampaignConfig `yaml:"campaign"`
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SourceConfig points at the published spreadsheet.
type SourceConfig struct {
	CSVURL     string        `yaml:"csvUrl"`
	Revalidate time.Duration `yaml:"revalidate"`
	// Timeout bounds a single fetch; zero leaves the transport default.
	Timeout time.Duration `yaml:"timeout"`
}

// CampaignConfig anchors day 1 of the countdown.
type CampaignConfig struct {
	StartDate string         `yaml:"startDate"`
	Timezone  string         `yaml:"timezone"`
	location  *time.Location `yaml:"-"`
	start     time.Time      `yaml:"-"`
}

// Location resolves the campaign timezone string to a time.Location.
func (c CampaignConfig) Location() *time.Location {
	if c.location != nil {
		return c.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Start returns midnight of the campaign start date in Location.
func (c CampaignConfig) Start() time.Time {
	if !c.start.IsZero() {
		return c.start
	}
	start, _ := time.ParseInLocation(dateLayout, defaultStartDate, c.Location())
	return start
}

// SiteConfig describes where the pages are published.
type SiteConfig struct {
	Title        string `yaml:"title"`
	BasePath     string `yaml:"basePath"`
	RedirectRoot bool   `yaml:"redirectRoot"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ExportConfig configures static export.
type ExportConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig selects level and optional rotated log file.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
}

// siteFile mirrors SiteConfig with pointers so explicit zero values in YAML
// are distinguishable from absent keys.
type siteFile struct {
	Site struct {
		Title        string  `yaml:"title"`
		BasePath     *string `yaml:"basePath"`
		RedirectRoot *bool   `yaml:"redirectRoot"`
	} `yaml:"site"`
}

type envOverrides struct {
	CSVURL       string        `env:"COUNTDOWN_CSV_URL"`
	Revalidate   time.Duration `env:"COUNTDOWN_REVALIDATE"`
	Timeout      time.Duration `env:"COUNTDOWN_FETCH_TIMEOUT"`
	StartDate    string        `env:"COUNTDOWN_START_DATE"`
	Timezone     string        `env:"COUNTDOWN_TIMEZONE"`
	Title        string        `env:"COUNTDOWN_TITLE"`
	BasePath     string        `env:"COUNTDOWN_BASE_PATH"`
	RedirectRoot string        `env:"COUNTDOWN_REDIRECT_ROOT"`
	Addr         string        `env:"COUNTDOWN_ADDR"`
	Port         string        `env:"PORT"`
	ExportDir    string        `env:"COUNTDOWN_EXPORT_DIR"`
	LogLevel     string        `env:"COUNTDOWN_LOG_LEVEL"`
	LogFile      string        `env:"COUNTDOWN_LOG_FILE"`
}

// LoadFrom reads YAML configuration (if present), loads the optional .env file
// and applies environment overrides.
func LoadFrom(path, envFile string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			var site siteFile
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else if err := yaml.Unmarshal(raw, &site); err != nil {
				log.Printf("config: cannot parse site block of %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg, site)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("config: cannot load env file %s: %v", envFile, err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Site.BasePath = normalizeBasePath(cfg.Site.BasePath)
	cfg.bindCampaign()

	if cfg.Source.Revalidate <= 0 {
		cfg.Source.Revalidate = defaultRevalidate
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		log.Printf("config: cannot parse environment: %v (ignoring overrides)", err)
		return
	}

	if o.CSVURL != "" {
		c.Source.CSVURL = o.CSVURL
	}
	if o.Revalidate > 0 {
		c.Source.Revalidate = o.Revalidate
	}
	if o.Timeout > 0 {
		c.Source.Timeout = o.Timeout
	}

	if o.StartDate != "" {
		c.Campaign.StartDate = o.StartDate
	}
	if o.Timezone != "" {
		c.Campaign.Timezone = o.Timezone
	}

	if o.Title != "" {
		c.Site.Title = o.Title
	}
	if o.BasePath != "" {
		c.Site.BasePath = o.BasePath
	}
	if o.RedirectRoot != "" {
		if v, err := cast.ToBoolE(o.RedirectRoot); err != nil {
			log.Printf("config: invalid COUNTDOWN_REDIRECT_ROOT %q: %v", o.RedirectRoot, err)
		} else {
			c.Site.RedirectRoot = v
		}
	}

	if o.Port != "" {
		c.Server.Addr = ":" + o.Port
	}
	if o.Addr != "" {
		c.Server.Addr = o.Addr
	}

	if o.ExportDir != "" {
		c.Export.Dir = o.ExportDir
	}

	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Logging.File = o.LogFile
	}
}

func (c *Config) bindCampaign() {
	tz := c.Campaign.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
		tz = defaultTimezone
	}
	c.Campaign.Timezone = tz
	c.Campaign.location = loc

	date := c.Campaign.StartDate
	if date == "" {
		date = defaultStartDate
	}
	start, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		log.Printf("config: invalid start date %q, reverting to %s", date, defaultStartDate)
		date = defaultStartDate
		start, _ = time.ParseInLocation(dateLayout, date, loc)
	}
	c.Campaign.StartDate = date
	c.Campaign.start = start
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	p = strings.TrimRight(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func mergeConfig(base, override Config, site siteFile) Config {
	if override.Source.CSVURL != "" {
		base.Source.CSVURL = override.Source.CSVURL
	}
	if override.Source.Revalidate > 0 {
		base.Source.Revalidate = override.Source.Revalidate
	}
	if override.Source.Timeout > 0 {
		base.Source.Timeout = override.Source.Timeout
	}

	if override.Campaign.StartDate != "" {
		base.Campaign.StartDate = override.Campaign.StartDate
	}
	if override.Campaign.Timezone != "" {
		base.Campaign.Timezone = override.Campaign.Timezone
	}

	if site.Site.Title != "" {
		base.Site.Title = site.Site.Title
	}
	if site.Site.BasePath != nil {
		base.Site.BasePath = *site.Site.BasePath
	}
	if site.Site.RedirectRoot != nil {
		base.Site.RedirectRoot = *site.Site.RedirectRoot
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}

	if override.Export.Dir != "" {
		base.Export.Dir = override.Export.Dir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.MaxSizeMB > 0 {
		base.Logging.MaxSizeMB = override.Logging.MaxSizeMB
	}
	if override.Logging.MaxBackups > 0 {
		base.Logging.MaxBackups = override.Logging.MaxBackups
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Source: SourceConfig{
			CSVURL:     defaultSheetURL,
			Revalidate: defaultRevalidate,
		},
		Campaign: CampaignConfig{StartDate: defaultStartDate, Timezone: defaultTimezone},
		Site: SiteConfig{
			Title:        "No Kings Countdown",
			BasePath:     "/No-Kings-Countdown",
			RedirectRoot: true,
		},
		Server:  ServerConfig{Addr: ":8080"},
		Export:  ExportConfig{Dir: "out"},
		Logging: LoggingConfig{Level: "info", MaxSizeMB: 20, MaxBackups: 3},
	}
}
