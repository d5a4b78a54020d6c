package gateway

import "testing"

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := ConfigFromEnv(envMap(map[string]string{"APP_SECRET": "s3cret", "OPENAI_API_KEY": "sk-server"}))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.ListenAddr != ":8080" || cfg.Handler.UpstreamURL != DefaultUpstreamURL || cfg.Handler.APIKey != "sk-server" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Parallel()
	cfg, err := ConfigFromEnv(envMap(map[string]string{
		"APP_SECRET":   "s3cret",
		"LISTEN_ADDR":  "127.0.0.1:9090",
		"UPSTREAM_URL": "http://localhost:1234/v1/chat/completions",
	}))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9090" || cfg.Handler.UpstreamURL != "http://localhost:1234/v1/chat/completions" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestConfigFromEnvRequiresSecret(t *testing.T) {
	t.Parallel()
	if _, err := ConfigFromEnv(envMap(map[string]string{"OPENAI_API_KEY": "sk"})); err == nil {
		t.Fatalf("expected error without APP_SECRET")
	}
}
