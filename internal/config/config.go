// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Registry    RegistryConfig    `yaml:"registry" mapstructure:"registry"`
	Serp        SerpConfig        `yaml:"serp" mapstructure:"serp"`
	Scrapin     ScrapinConfig     `yaml:"scrapin" mapstructure:"scrapin"`
	ScrapingBee ScrapingBeeConfig `yaml:"scrapingbee" mapstructure:"scrapingbee"`
	Anthropic   AnthropicConfig   `yaml:"anthropic" mapstructure:"anthropic"`
	Filter      FilterConfig      `yaml:"filter" mapstructure:"filter"`
	Pipeline    PipelineConfig    `yaml:"pipeline" mapstructure:"pipeline"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-log and scrape-cache database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// RegistryConfig configures the registry detail scraper.
type RegistryConfig struct {
	DetailURL        string `yaml:"detail_url" mapstructure:"detail_url"`
	ProxyHost        string `yaml:"proxy_host" mapstructure:"proxy_host"`
	ProxyUsername    string `yaml:"proxy_username" mapstructure:"proxy_username"`
	ProxyPassword    string `yaml:"proxy_password" mapstructure:"proxy_password"`
	TimeoutSecs      int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RetryDelaySecs   int    `yaml:"retry_delay_secs" mapstructure:"retry_delay_secs"`
	CaptchaDelaySecs int    `yaml:"captcha_delay_secs" mapstructure:"captcha_delay_secs"`
	Workers          int    `yaml:"workers" mapstructure:"workers"`
	MinJitterSecs    int    `yaml:"min_jitter_secs" mapstructure:"min_jitter_secs"`
	MaxJitterSecs    int    `yaml:"max_jitter_secs" mapstructure:"max_jitter_secs"`
}

// SerpConfig holds DataForSEO API settings for founder profile search.
type SerpConfig struct {
	Auth         string `yaml:"auth" mapstructure:"auth"`
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	LocationCode int    `yaml:"location_code" mapstructure:"location_code"`
	LanguageCode string `yaml:"language_code" mapstructure:"language_code"`
	Depth        int    `yaml:"depth" mapstructure:"depth"`
	ProfileSite  string `yaml:"profile_site" mapstructure:"profile_site"`
}

// ScrapinConfig holds Scrapin enrichment API settings.
type ScrapinConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// ScrapingBeeConfig holds ScrapingBee settings for website crawling.
type ScrapingBeeConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// AnthropicConfig holds Anthropic API settings for the classifier.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// FilterConfig configures the industry-code relevance filter and the
// detail-stage inclusion rules.
type FilterConfig struct {
	NaceVersion        int      `yaml:"nace_version" mapstructure:"nace_version"`
	IncludePrefixes    []string `yaml:"include_prefixes" mapstructure:"include_prefixes"`
	ExcludePrefixes    []string `yaml:"exclude_prefixes" mapstructure:"exclude_prefixes"`
	FoundingYearCutoff int      `yaml:"founding_year_cutoff" mapstructure:"founding_year_cutoff"`
	FreeMailDomains    []string `yaml:"free_mail_domains" mapstructure:"free_mail_domains"`
}

// PipelineConfig configures orchestration behavior.
type PipelineConfig struct {
	Workers        int `yaml:"workers" mapstructure:"workers"`
	ChunkSize      int `yaml:"chunk_size" mapstructure:"chunk_size"`
	ChunkPauseSecs int `yaml:"chunk_pause_secs" mapstructure:"chunk_pause_secs"`
	CacheTTLHours  int `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so the
	// credential keys without defaults must be bound explicitly or env-only
	// secrets never reach Unmarshal.
	for _, key := range []string{
		"serp.auth",
		"scrapin.key",
		"scrapingbee.key",
		"anthropic.key",
		"registry.proxy_host",
		"registry.proxy_username",
		"registry.proxy_password",
		"log.file",
	} {
		_ = v.BindEnv(key)
	}

	// Defaults
	v.SetDefault("store.path", "leadgen.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("registry.detail_url", "https://kbopub.economie.fgov.be/kbopub/zoeknummerform.html?nummer=%s")
	v.SetDefault("registry.timeout_secs", 10)
	v.SetDefault("registry.retry_delay_secs", 5)
	v.SetDefault("registry.captcha_delay_secs", 60)
	v.SetDefault("registry.workers", 5)
	v.SetDefault("registry.min_jitter_secs", 10)
	v.SetDefault("registry.max_jitter_secs", 30)
	v.SetDefault("serp.base_url", "https://api.dataforseo.com")
	v.SetDefault("serp.location_code", 2826)
	v.SetDefault("serp.language_code", "en")
	v.SetDefault("serp.depth", 5)
	v.SetDefault("serp.profile_site", "be.linkedin.com/in/")
	v.SetDefault("scrapin.base_url", "https://api.scrapin.io")
	v.SetDefault("scrapingbee.base_url", "https://app.scrapingbee.com/api/v1")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("filter.nace_version", 2008)
	v.SetDefault("filter.include_prefixes", []string{"582", "62", "63"})
	v.SetDefault("filter.exclude_prefixes", []string{"0", "1", "2", "681", "682"})
	v.SetDefault("filter.founding_year_cutoff", 2019)
	v.SetDefault("filter.free_mail_domains", []string{"gmail.com", "hotmail.com", "yahoo.com"})
	v.SetDefault("pipeline.workers", 5)
	v.SetDefault("pipeline.chunk_size", 25)
	v.SetDefault("pipeline.chunk_pause_secs", 60)
	v.SetDefault("pipeline.cache_ttl_hours", 24)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	if cfg.File != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.File)
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
