package anew

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/matthewmueller/jsonc"
	"github.com/spf13/pflag"
)

type Config struct {
	StoreDir string `koanf:"store"`
	LogLevel string `koanf:"log_level"`
	NoCopy   bool   `koanf:"no_copy"`
	Verbose  bool   `koanf:"verbose"`
}

var defaults = map[string]interface{}{
	"store":     "",
	"log_level": "warn",
	"no_copy":   false,
}

var envProvider = env.ProviderWithValue("ANEW_", ".", func(s string, v string) (string, interface{}) {
	if v == "" {
		return "", nil
	}

	switch s {
	case "ANEW_STORE":
		return "store", v
	case "ANEW_LOG_LEVEL":
		return "log_level", v
	case "ANEW_NO_COPY":
		return "no_copy", v
	}
	return "", nil
})

// flagKey maps dashed flag names onto config keys, so --no-copy sets no_copy.
func flagKey(flags *pflag.FlagSet) func(*pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	}
}

// ConfigPath is $ANEW_CONFIG if set, else $XDG_CONFIG_HOME/anew/config.jsonc.
func ConfigPath() string {
	if p := os.Getenv("ANEW_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(xdg.ConfigHome, "anew", "config.jsonc")
}

// LoadConfig layers defaults, the config file, ANEW_* variables and flags,
// later sources winning. A missing config file is fine; a malformed one is not.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(defaults, "."), nil)

	configPath := ConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), ConfigParser()); err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
	}

	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	return &cfg, nil
}

// JsonC implements a koanf parser for JSON with comments and trailing commas.
type JsonC struct{}

func ConfigParser() *JsonC {
	return &JsonC{}
}

func (p *JsonC) Unmarshal(b []byte) (map[string]interface{}, error) {
	jsonBytes, err := jsonc.Standardize(b)
	if err != nil {
		return nil, err
	}

	var out map[string]interface{}
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *JsonC) Marshal(o map[string]interface{}) ([]byte, error) {
	return json.MarshalIndent(o, "", "  ")
}
