package config

import (
	"fmt"
	"log"
	"strconv"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

type NotifyTransport string

const (
	TransportSMTP     NotifyTransport = "smtp"
	TransportGmail    NotifyTransport = "gmail"
	TransportTelegram NotifyTransport = "telegram"
)

// Config is read once at process start and handed to the components that
// need it. Nothing else reads the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
	Debug     bool   `env:"DEBUG"`

	CORSAllowOrigins string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	Temperature      float32     `env:"OPENAI_TEMPERATURE" envDefault:"0.3"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Reply handling
	StripInternalSummary bool `env:"STRIP_INTERNAL_SUMMARY"`

	// Notification
	NotifyTransport NotifyTransport `env:"NOTIFY_TRANSPORT" envDefault:"smtp"`
	FromEmail       string          `env:"FROM_EMAIL" envDefault:"anfrage-bot@ihre-domain.de"`
	CompanyEmail    string          `env:"COMPANY_EMAIL"`

	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`

	GmailCredentialsPath string `env:"GMAIL_CREDENTIALS_JSON_PATH"`
	GmailTokenPath       string `env:"GMAIL_TOKEN_PATH"`

	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID"`
}

// Load parses the environment into a Config and checks the enumerated
// settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI, ProviderYandex:
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLMProvider)
	}
	switch c.NotifyTransport {
	case TransportSMTP, TransportGmail, TransportTelegram:
	default:
		return fmt.Errorf("unknown notify transport: %s", c.NotifyTransport)
	}
	return nil
}

// ListenAddr is the address the relay server binds to.
func (c *Config) ListenAddr() string {
	return ":" + c.Port
}

// Recipient is the notification destination for the selected transport. An
// empty result disables notifications.
func (c *Config) Recipient() string {
	if c.NotifyTransport == TransportTelegram {
		if c.TelegramChatID == 0 {
			return ""
		}
		return strconv.FormatInt(c.TelegramChatID, 10)
	}
	return c.CompanyEmail
}
