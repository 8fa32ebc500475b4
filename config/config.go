// Package config holds the settings shared by the parser, the generator and
// the command line.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// PROTOGEN_TYPEDEF_PREFIX or PROTOGEN_LIBRARY_DIR.
const EnvPrefix = "protogen"

// DefaultConfigName is looked up in the working directory when no config
// file is given.
const DefaultConfigName = ".protogen"

type Config struct {
	CallingConvention string   `mapstructure:"calling-convention"`
	TypedefPrefix     string   `mapstructure:"typedef-prefix"`
	Debug             bool     `mapstructure:"debug"`
	Dump              string   `mapstructure:"dump"`
	Protocol          Protocol `mapstructure:"protocol"`
	Library           Library  `mapstructure:"library"`
}

type Protocol struct {
	Output   string   `mapstructure:"output"`
	Struct   string   `mapstructure:"struct"`
	Group    string   `mapstructure:"group"`
	Includes []string `mapstructure:"includes"`
}

type Library struct {
	Dir          string   `mapstructure:"dir"`
	Groups       []string `mapstructure:"groups"`
	DefaultGroup string   `mapstructure:"default-group"`
	Suffix       string   `mapstructure:"suffix"`
	Includes     []string `mapstructure:"includes"`
}

// Default returns the settings used for the shared crypto protocol.
func Default() Config {
	return Config{
		CallingConvention: "EFIAPI",
		TypedefPrefix:     "SHARED_",
		Dump:              "functions.json",
		Protocol: Protocol{
			Output:   "SharedCryptoProtocol.h",
			Struct:   "SHARED_CRYPTO_PROTOCOL",
			Group:    "SharedCryptoProtocol",
			Includes: []string{"<Uefi.h>", "<SharedCryptoDefs.h>"},
		},
		Library: Library{
			Dir: ".",
			Groups: []string{
				"Bn", "Cipher", "Ec", "Hash", "Hkdf", "Hmac", "Kdf",
				"Pem", "Pk", "Pkcs", "Rng", "Rsa", "Tls", "X509",
			},
			DefaultGroup: "Crypto",
			Suffix:       "ApiLib.h",
			Includes:     []string{"<Uefi.h>", "<SharedCryptoDefs.h>"},
		},
	}
}

// New returns a viper instance primed with defaults and environment
// overrides.
func New() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("calling-convention", d.CallingConvention)
	v.SetDefault("typedef-prefix", d.TypedefPrefix)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("dump", d.Dump)
	v.SetDefault("protocol.output", d.Protocol.Output)
	v.SetDefault("protocol.struct", d.Protocol.Struct)
	v.SetDefault("protocol.group", d.Protocol.Group)
	v.SetDefault("protocol.includes", d.Protocol.Includes)
	v.SetDefault("library.dir", d.Library.Dir)
	v.SetDefault("library.groups", d.Library.Groups)
	v.SetDefault("library.default-group", d.Library.DefaultGroup)
	v.SetDefault("library.suffix", d.Library.Suffix)
	v.SetDefault("library.includes", d.Library.Includes)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadFile loads path into v. With an empty path it looks for
// .protogen.{yaml,toml,json} in the working directory and is quiet when
// there is none. It returns the file actually used, if any.
func ReadFile(v *viper.Viper, path string) (string, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return "", errors.Wrapf(err, "failed to read config %s", path)
		}
		return v.ConfigFileUsed(), nil
	}

	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "failed to read config")
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.CallingConvention) == "" || len(strings.Fields(c.CallingConvention)) != 1 {
		return errors.Errorf("config calling-convention must be a single token, got %q", c.CallingConvention)
	}
	if strings.TrimSpace(c.TypedefPrefix) == "" {
		return errors.New("config missing typedef-prefix")
	}
	if strings.TrimSpace(c.Protocol.Output) == "" {
		return errors.New("config missing protocol.output")
	}
	if strings.TrimSpace(c.Protocol.Struct) == "" {
		return errors.New("config missing protocol.struct")
	}
	if strings.TrimSpace(c.Protocol.Group) == "" {
		return errors.New("config missing protocol.group")
	}
	if strings.TrimSpace(c.Library.DefaultGroup) == "" {
		return errors.New("config missing library.default-group")
	}
	if strings.TrimSpace(c.Library.Suffix) == "" {
		return errors.New("config missing library.suffix")
	}

	seen := make(map[string]string)
	for _, g := range c.Library.Groups {
		key := strings.ToLower(strings.TrimSpace(g))
		if key == "" {
			return errors.New("config library.groups contains an empty group")
		}
		if prev, ok := seen[key]; ok {
			return errors.Errorf("config library.groups lists %q and %q", prev, g)
		}
		seen[key] = g
	}
	return nil
}
