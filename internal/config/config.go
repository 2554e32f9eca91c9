package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server       Server       `toml:"server"`
	Logs         Logs         `toml:"logs"`
	Metrics      Metrics      `toml:"metrics"`
	LLM          LLM          `toml:"llm"`
	Payments     Payments     `toml:"payments"`
	Messaging    Messaging    `toml:"messaging"`
	CRM          CRM          `toml:"crm"`
	Auth         Auth         `toml:"auth"`
	Conversation Conversation `toml:"conversation"`
	Archive      Archive      `toml:"archive"`
	Prompts      Prompts      `toml:"prompts"`
	Seed         Seed         `toml:"seed"`
}

// Server holds HTTP server settings. Timeouts are seconds.
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Logs holds logger settings.
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics holds the Prometheus toggle.
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// LLM points at the chat-completions collaborator. Timeout is seconds.
type LLM struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout int    `toml:"timeout"`
}

// Payments holds the Daraja-style gateway credentials. Timeout is seconds.
type Payments struct {
	URL            string `toml:"url"`
	ConsumerKey    string `toml:"consumer_key"`
	ConsumerSecret string `toml:"consumer_secret"`
	ShortCode      string `toml:"short_code"`
	Timeout        int    `toml:"timeout"`
}

// Messaging holds the WhatsApp-style gateway settings. Timeout is seconds.
type Messaging struct {
	URL           string `toml:"url"`
	AccessToken   string `toml:"access_token"`
	PhoneNumberID string `toml:"phone_number_id"`
	VerifyToken   string `toml:"verify_token"`
	Timeout       int    `toml:"timeout"`
}

// CRM points at the contact service. Timeout is seconds.
type CRM struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Operator is one configured admin login.
type Operator struct {
	Username     string `toml:"username"`
	PasswordHash string `toml:"password_hash"` // bcrypt
}

// Auth holds the admin-surface settings. TokenTTL is minutes.
type Auth struct {
	JWTSecret string     `toml:"jwt_secret"`
	TokenTTL  int        `toml:"token_ttl"`
	Operators []Operator `toml:"operators"`
}

// Conversation bounds the orchestration loop.
type Conversation struct {
	MaxToolRounds    int `toml:"max_tool_rounds"`
	HistoryLimit     int `toml:"history_limit"`
	BroadcastWorkers int `toml:"broadcast_workers"`
}

// Archive holds the optional Postgres audit-trail connection.
type Archive struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (a Archive) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		a.Host, a.Port, a.User, a.Password, a.DBName, a.SSLMode)
}

// Prompts points at the role prompt files.
type Prompts struct {
	CustomerFile string `toml:"customer_file"`
	OperatorFile string `toml:"operator_file"`
}

// Seed points at the initial route inventory.
type Seed struct {
	RoutesFile string `toml:"routes_file"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.LLM.URL == "" {
		return fmt.Errorf("llm.url is required")
	}
	if c.Payments.URL == "" {
		return fmt.Errorf("payments.url is required")
	}
	if c.Messaging.URL == "" {
		return fmt.Errorf("messaging.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}
