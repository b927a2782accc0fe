package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.ListenAddr() != ":8080" {
		t.Fatalf("unexpected port: %q / %q", cfg.Port, cfg.ListenAddr())
	}
	if cfg.OpenAIModel != "gpt-4.1-mini" {
		t.Fatalf("unexpected model: %q", cfg.OpenAIModel)
	}
	if cfg.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", cfg.Temperature)
	}
	if cfg.LLMProvider != ProviderOpenAI || cfg.NotifyTransport != TransportSMTP {
		t.Fatalf("unexpected provider/transport: %s/%s", cfg.LLMProvider, cfg.NotifyTransport)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("unexpected smtp port: %d", cfg.SMTPPort)
	}
	if cfg.StaticDir != "public" {
		t.Fatalf("unexpected static dir: %q", cfg.StaticDir)
	}
	if cfg.StripInternalSummary {
		t.Fatalf("summary stripping must be off by default")
	}
}

func TestLoad_RejectsUnknownTransport(t *testing.T) {
	t.Setenv("NOTIFY_TRANSPORT", "pigeon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestLoad_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "llama")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

func TestRecipient(t *testing.T) {
	cfg := &Config{NotifyTransport: TransportSMTP, CompanyEmail: "office@example.com"}
	if got := cfg.Recipient(); got != "office@example.com" {
		t.Fatalf("smtp recipient: %q", got)
	}

	cfg = &Config{NotifyTransport: TransportTelegram, CompanyEmail: "office@example.com"}
	if got := cfg.Recipient(); got != "" {
		t.Fatalf("telegram without chat id must be empty, got %q", got)
	}

	cfg.TelegramChatID = -100123
	if got := cfg.Recipient(); got != "-100123" {
		t.Fatalf("telegram recipient: %q", got)
	}
}
