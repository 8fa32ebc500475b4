package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if want := Default(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("PROTOGEN_TYPEDEF_PREFIX", "EDKII_")
	t.Setenv("PROTOGEN_LIBRARY_DIR", "out/lib")
	t.Setenv("PROTOGEN_LIBRARY_DEFAULT_GROUP", "Misc")

	cfg, err := Load(New())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TypedefPrefix != "EDKII_" {
		t.Errorf("TypedefPrefix = %q, want %q", cfg.TypedefPrefix, "EDKII_")
	}
	if cfg.Library.Dir != "out/lib" {
		t.Errorf("Library.Dir = %q, want %q", cfg.Library.Dir, "out/lib")
	}
	if cfg.Library.DefaultGroup != "Misc" {
		t.Errorf("Library.DefaultGroup = %q, want %q", cfg.Library.DefaultGroup, "Misc")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "protogen.yaml")
	data := `typedef-prefix: EDKII_
protocol:
  output: EdkiiCryptoProtocol.h
  struct: EDKII_CRYPTO_PROTOCOL
library:
  groups: [Hash, Tls]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	v := New()
	used, err := ReadFile(v, path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}

	cfg, err := Load(v)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Protocol.Struct != "EDKII_CRYPTO_PROTOCOL" {
		t.Errorf("Protocol.Struct = %q, want EDKII_CRYPTO_PROTOCOL", cfg.Protocol.Struct)
	}
	if !reflect.DeepEqual(cfg.Library.Groups, []string{"Hash", "Tls"}) {
		t.Errorf("Library.Groups = %v, want [Hash Tls]", cfg.Library.Groups)
	}
	if cfg.Library.Suffix != Default().Library.Suffix {
		t.Errorf("Library.Suffix = %q, want the default", cfg.Library.Suffix)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("ReadFile succeeded for a missing explicit config")
	}
}

func TestReadFileSearch(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	used, err := ReadFile(New(), "")
	if err != nil {
		t.Fatalf("ReadFile without a config file failed: %v", err)
	}
	if used != "" {
		t.Errorf("used = %q, want none", used)
	}

	if err := os.WriteFile(filepath.Join(dir, DefaultConfigName+".yaml"), []byte("typedef-prefix: X_\n"), 0644); err != nil {
		t.Fatal(err)
	}
	v := New()
	if used, err = ReadFile(v, ""); err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.HasSuffix(used, DefaultConfigName+".yaml") {
		t.Errorf("used = %q, want %s.yaml", used, DefaultConfigName)
	}
	if got := v.GetString("typedef-prefix"); got != "X_" {
		t.Errorf("typedef-prefix = %q, want X_", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"empty calling convention", func(c *Config) { c.CallingConvention = "" }, "calling-convention"},
		{"two token calling convention", func(c *Config) { c.CallingConvention = "EFI API" }, "calling-convention"},
		{"empty prefix", func(c *Config) { c.TypedefPrefix = " " }, "typedef-prefix"},
		{"empty output", func(c *Config) { c.Protocol.Output = "" }, "protocol.output"},
		{"empty struct", func(c *Config) { c.Protocol.Struct = "" }, "protocol.struct"},
		{"empty protocol group", func(c *Config) { c.Protocol.Group = "" }, "protocol.group"},
		{"empty default group", func(c *Config) { c.Library.DefaultGroup = "" }, "default-group"},
		{"empty suffix", func(c *Config) { c.Library.Suffix = "" }, "suffix"},
		{"empty group", func(c *Config) { c.Library.Groups = []string{"Hash", ""} }, "empty group"},
		{"duplicate group", func(c *Config) { c.Library.Groups = []string{"Tls", "TLS"} }, `"Tls" and "TLS"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %s", err, tt.want)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
