package configs

import (
	"fmt"
	"strings"

	"log-analyzer/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "LOG_ANALYZER"

// FlagKeys maps CLI flag names to config keys. Only flags the user actually set
// override the file; unset flags never shadow file values with their zero defaults.
var FlagKeys = map[string]string{
	"log-level":       "log.level",
	"report-size":     "report.size",
	"report-dir":      "report.dir",
	"error-threshold": "report.error_rate_threshold",
	"log-dir":         "log_source.dir",
	"workers":         "ingestion.workers",
	"port":            "server.port",
	"watch":           "watch.enabled",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("report.size", 1000)
	v.SetDefault("report.dir", "./reports")
	v.SetDefault("report.template", "")
	v.SetDefault("report.top_user_agents", 10)
	v.SetDefault("log_source.dir", "./log")
	v.SetDefault("log_source.pattern", "nginx-access-ui.log-*")
	v.SetDefault("ingestion.workers", 1)
	v.SetDefault("ingestion.max_line_bytes", 1024*1024)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.idle_timeout", 60)
	v.SetDefault("watch.enabled", false)
}

// LoadConfig merges defaults, the optional YAML file at configPath, LOG_ANALYZER_* environment
// variables and the set flags of flags (highest precedence), then validates the result.
// An empty configPath skips the file; flags may be nil.
var LoadConfig = func(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// no default exists for the threshold, so AutomaticEnv alone would never surface it
	_ = v.BindEnv("report.error_rate_threshold")

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.Visit(func(f *pflag.Flag) {
			key, ok := FlagKeys[f.Name]
			if !ok || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// "Config.Report.Size" -> "report.size"
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	switch tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
