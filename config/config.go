package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Dida sync specifics
	Dida  DidaConfig
	Sync  SyncConfig
	Vault VaultConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// DidaConfig holds the remote service credentials. Both backing services use
// the same cookie sign-on; the hosts can be overridden per service.
type DidaConfig struct {
	Username     string
	Password     string
	DidaHost     string
	TickTickHost string
}

// SyncConfig tunes the pipeline.
type SyncConfig struct {
	WindowDays        int
	CompletedLimit    int
	RequestsPerMinute int
	DisableAutoAction bool
}

// VaultConfig locates the local vault.
type VaultConfig struct {
	Root          string
	AttachmentDir string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Remote service
	cfg.Dida.Username = viper.GetString("dida.username")
	cfg.Dida.Password = viper.GetString("dida.password")
	cfg.Dida.DidaHost = viper.GetString("dida.dida_host")
	cfg.Dida.TickTickHost = viper.GetString("dida.ticktick_host")
	if username := viper.GetString("dida_username"); username != "" {
		cfg.Dida.Username = username
	}
	if password := viper.GetString("dida_password"); password != "" {
		cfg.Dida.Password = password
	}
	if cfg.Dida.Username == "" || cfg.Dida.Password == "" {
		return nil, fmt.Errorf("dida credentials missing - set dida.username and dida.password")
	}

	// Pipeline
	cfg.Sync.WindowDays = viper.GetInt("sync.window_days")
	cfg.Sync.CompletedLimit = viper.GetInt("sync.completed_limit")
	cfg.Sync.RequestsPerMinute = viper.GetInt("sync.requests_per_minute")
	cfg.Sync.DisableAutoAction = viper.GetBool("sync.disable_auto_action")

	// Vault
	cfg.Vault.Root = viper.GetString("vault.root")
	cfg.Vault.AttachmentDir = viper.GetString("vault.attachment_dir")
	if root := viper.GetString("vault_root"); root != "" {
		cfg.Vault.Root = root
	}
	if cfg.Vault.Root == "" {
		return nil, fmt.Errorf("vault root missing - set vault.root")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)
	viper.SetDefault("sync.window_days", 180)
	viper.SetDefault("sync.completed_limit", 999)
	viper.SetDefault("sync.requests_per_minute", 60)
	viper.SetDefault("sync.disable_auto_action", false)
	viper.SetDefault("vault.attachment_dir", "attachments")
}
