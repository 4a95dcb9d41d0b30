package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	SMTP     *SMTPConfig     `mapstructure:"smtp"`
	Raffle   *RaffleConfig   `mapstructure:"raffle"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	ManagerEmails      []string      `mapstructure:"manager_emails"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DB              string        `mapstructure:"db"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

// SMTPConfig is hot-reloadable; readers must go through Snapshot.
type SMTPConfig struct {
	mu sync.RWMutex

	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type SMTPSettings struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c *SMTPConfig) Snapshot() SMTPSettings {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return SMTPSettings{
		Enabled:  c.Enabled,
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
	}
}

func (c *SMTPConfig) replace(s SMTPSettings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Enabled = s.Enabled
	c.Host = s.Host
	c.Port = s.Port
	c.Username = s.Username
	c.Password = s.Password
	c.From = s.From
}

type RaffleConfig struct {
	MaxLineQuantity int `mapstructure:"max_line_quantity"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.jwt_ttl", 2*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_open_conns", 25)
	v.SetDefault("postgres.max_idle_conns", 5)
	v.SetDefault("postgres.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("raffle.max_line_quantity", 100)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return v
}

func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return conf, nil
}

func (c *AppConfig) Validate() error {
	err := validation.ValidateStruct(
		c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Postgres, validation.Required),
		validation.Field(&c.SMTP, validation.Required),
		validation.Field(&c.Raffle, validation.Required),
	)
	if err != nil {
		return err
	}

	return c.API.Validate()
}

func (c *APIConfig) Validate() error {
	return validation.ValidateStruct(
		c,
		validation.Field(&c.Port, validation.Required),
		validation.Field(&c.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.Environment, validation.In("development", "staging", "production", "test")),
	)
}

// Watch re-reads the config file whenever it changes and applies the settings
// that are safe to swap at runtime.
func Watch(path string, conf *AppConfig, onChange func(fsnotify.Event)) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fresh := &AppConfig{}
		if err := v.Unmarshal(fresh); err != nil {
			return
		}
		if fresh.SMTP != nil {
			conf.SMTP.replace(fresh.SMTP.Snapshot())
		}
		if onChange != nil {
			onChange(e)
		}
	})
	v.WatchConfig()
}
