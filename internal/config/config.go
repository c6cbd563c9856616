// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values
// Validate config

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"go-resume-coach/internal/apperr"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type ChatConfig struct {
	//"groq" (plain HTTP) or "langchain"
	Provider    string  `yaml:"provider"`
	URL         string  `yaml:"url" env:"GROQ_API_URL"`
	APIKey      string  `yaml:"api_key" env:"GROQ_API_KEY"`
	Model       string  `yaml:"model" env:"CHAT_MODEL"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type ConvertConfig struct {
	URL    string `yaml:"url" env:"CONVERT_API_URL"`
	Secret string `yaml:"secret" env:"CONVERT_API_SECRET"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

// Enabled reports whether contact delivery over Telegram is configured.
func (t TelegramConfig) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type ContactConfig struct {
	Email    string `yaml:"email"`
	LinkedIn string `yaml:"linkedin"`
}

type Config struct {
	Port     string         `yaml:"port" env:"PORT"`
	Chat     ChatConfig     `yaml:"chat"`
	Convert  ConvertConfig  `yaml:"convert"`
	Telegram TelegramConfig `yaml:"telegram"`
	Contact  ContactConfig  `yaml:"contact"`
	//Advertised to users only, uploads are not rejected above it
	MaxUploadMB    int      `yaml:"max_upload_mb"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads .env, the YAML file at path (CONFIG_PATH wins when set) and the
// process environment, then validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if p := os.Getenv("CONFIG_PATH"); p != "" {
		path = p
	}

	//Load yaml config
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("⚠️ Could not read %s: %v. Using env only.", path, err)
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperr.Configuration("error parsing %s: %v", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	override := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	override(&c.Port, "PORT")
	override(&c.Chat.Provider, "CHAT_PROVIDER")
	override(&c.Chat.URL, "GROQ_API_URL")
	override(&c.Chat.APIKey, "GROQ_API_KEY")
	override(&c.Chat.Model, "CHAT_MODEL")
	override(&c.Convert.URL, "CONVERT_API_URL")
	override(&c.Convert.Secret, "CONVERT_API_SECRET")
	override(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return apperr.Configuration("invalid TELEGRAM_CHAT_ID %q: %v", chatID, err)
		}
		c.Telegram.ChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.Chat.Provider == "" {
		c.Chat.Provider = "groq"
	}
	if c.Chat.Model == "" {
		c.Chat.Model = "llama-3.3-70b-versatile"
	}
	if c.Chat.Temperature == 0 {
		c.Chat.Temperature = 0.7
	}
	if c.Chat.MaxTokens == 0 {
		c.Chat.MaxTokens = 1500
	}
	if c.MaxUploadMB == 0 {
		c.MaxUploadMB = 10
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// Validate fails with a configuration error naming every missing endpoint or
// credential, so nothing reaches the network half-configured.
func (c *Config) Validate() error {
	var missing []string
	if c.Chat.URL == "" {
		missing = append(missing, "GROQ_API_URL")
	}
	if c.Chat.APIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if c.Convert.URL == "" {
		missing = append(missing, "CONVERT_API_URL")
	}
	if c.Convert.Secret == "" {
		missing = append(missing, "CONVERT_API_SECRET")
	}
	if len(missing) > 0 {
		return apperr.Configuration("missing required settings: %s (set them in .env or %s)", strings.Join(missing, ", "), DefaultPath)
	}

	switch c.Chat.Provider {
	case "groq", "langchain":
	default:
		return apperr.Configuration("unknown chat provider %q", c.Chat.Provider)
	}

	if c.Telegram.Token != "" && c.Telegram.ChatID == 0 {
		return apperr.Configuration("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
