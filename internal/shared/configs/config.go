package configs

// Config holds all configuration for the application.
// It is loaded once and passed by pointer; nothing mutates it after LoadConfig returns.
type Config struct {
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	LogSource LogSourceConfig `mapstructure:"log_source" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Watch     WatchConfig     `mapstructure:"watch"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
}

// ReportConfig holds report generation configuration.
type ReportConfig struct {
	Size int    `mapstructure:"size" validate:"required,min=1"`
	Dir  string `mapstructure:"dir" validate:"required"`
	// ErrorRateThreshold is a percent (0..100). Nil disables the error-rate gate.
	ErrorRateThreshold *float64 `mapstructure:"error_rate_threshold" validate:"omitempty,min=0,max=100"`
	// Template is an optional HTML page with a $table_json placeholder replacing the built-in one.
	Template string `mapstructure:"template" validate:"omitempty,file"`
	// TopUserAgents caps the user-agent section of a report.
	TopUserAgents int `mapstructure:"top_user_agents" validate:"min=0"`
}

// LogSourceConfig describes where access logs are found.
type LogSourceConfig struct {
	Dir     string `mapstructure:"dir" validate:"required"`
	Pattern string `mapstructure:"pattern" validate:"required,glob"`
}

// IngestionConfig holds log reading configuration.
type IngestionConfig struct {
	Workers      int `mapstructure:"workers" validate:"required,min=1,max=64"`
	MaxLineBytes int `mapstructure:"max_line_bytes" validate:"required,min=1024"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// WatchConfig controls regenerating the report when a new log file appears.
type WatchConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
