package config

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	NG     NGConfig     `yaml:"ng" mapstructure:"ng"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Rules  RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig configures how input sheets are segmented.
type InputConfig struct {
	Layout string `yaml:"layout" mapstructure:"layout"`
}

// NGConfig locates NG (do-not-contact) lists.
type NGConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// FilterConfig configures industry filtering and company matching.
type FilterConfig struct {
	IndustryMode  string `yaml:"industry_mode" mapstructure:"industry_mode"`
	MinContainLen int    `yaml:"min_contain_len" mapstructure:"min_contain_len"`
}

// OutputConfig configures the output workbook.
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	TemplatePath  string `yaml:"template_path" mapstructure:"template_path"`
	TemplateSheet string `yaml:"template_sheet" mapstructure:"template_sheet"`
	StartRow      int    `yaml:"start_row" mapstructure:"start_row"`
}

// RulesConfig points at an optional keyword rules file.
type RulesConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// BatchConfig configures batch processing.
type BatchConfig struct {
	MaxConcurrentFiles int `yaml:"max_concurrent_files" mapstructure:"max_concurrent_files"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GCHANGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.layout", "auto")
	v.SetDefault("ng.dir", ".")
	v.SetDefault("ng.pattern", "NGリスト")
	v.SetDefault("filter.industry_mode", "none")
	v.SetDefault("filter.min_contain_len", 4)
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.template_path", "")
	v.SetDefault("output.template_sheet", "入力マスター")
	v.SetDefault("output.start_row", 2)
	v.SetDefault("rules.path", "")
	v.SetDefault("batch.max_concurrent_files", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

var (
	validLayouts       = []string{"auto", "template", "phone-block", "labeled", "association"}
	validIndustryModes = []string{"none", "exclude", "highlight"}
	validLogFormats    = []string{"json", "console"}
)

// Validate checks the settings a command depends on. mode is the command
// name: "format", "serve" or "nglists".
func (c *Config) Validate(mode string) error {
	var problems []string

	if !oneOf(c.Log.Format, validLogFormats) {
		problems = append(problems, fmt.Sprintf("log.format must be one of %s", strings.Join(validLogFormats, ", ")))
	}
	if c.NG.Pattern == "" {
		problems = append(problems, "ng.pattern is required")
	}

	switch mode {
	case "format", "serve":
		if !oneOf(c.Input.Layout, validLayouts) {
			problems = append(problems, fmt.Sprintf("input.layout %q is not one of %s", c.Input.Layout, strings.Join(validLayouts, ", ")))
		}
		if !oneOf(c.Filter.IndustryMode, validIndustryModes) {
			problems = append(problems, fmt.Sprintf("filter.industry_mode %q is not one of %s", c.Filter.IndustryMode, strings.Join(validIndustryModes, ", ")))
		}
		if c.Filter.MinContainLen < 0 {
			problems = append(problems, "filter.min_contain_len must be >= 0")
		}
		if c.Output.StartRow < 1 {
			problems = append(problems, "output.start_row must be >= 1")
		}
		if c.Output.TemplateSheet == "" {
			problems = append(problems, "output.template_sheet is required")
		}
		if c.Batch.MaxConcurrentFiles < 1 {
			problems = append(problems, "batch.max_concurrent_files must be >= 1")
		}
	}
	if mode == "serve" && (c.Server.Port < 1 || c.Server.Port > 65535) {
		problems = append(problems, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
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

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
