package config

import "testing"

func TestLoadServerConfigDefaultsPort(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
}

func TestLoadServerConfigAcceptsBarePort(t *testing.T) {
	t.Setenv("PORT", "9090")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, ":9090")
	}
}

func TestLoadServerConfigAcceptsHostPort(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8081")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Addr != "127.0.0.1:8081" {
		t.Fatalf("Addr = %q, want %q", cfg.Addr, "127.0.0.1:8081")
	}
}

func TestLoadServerConfigRejectsNonNumericPort(t *testing.T) {
	for _, port := range []string{"abc", "80 80", "host:abc", "0", "70000"} {
		t.Setenv("PORT", port)

		if _, err := loadServerConfig(); err == nil {
			t.Fatalf("expected error for PORT=%q", port)
		}
	}
}

func TestLoopbackAddr(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{":8080", "127.0.0.1:8080"},
		{"0.0.0.0:8080", "127.0.0.1:8080"},
		{"192.168.1.5:9090", "192.168.1.5:9090"},
		{"127.0.0.1:8081", "127.0.0.1:8081"},
	}

	for _, tc := range cases {
		got := ServerConfig{Addr: tc.addr}.LoopbackAddr()
		if got != tc.want {
			t.Fatalf("LoopbackAddr(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
