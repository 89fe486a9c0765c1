package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"comprasweb/orderform"
	"comprasweb/quickcreate"
)

// Config is the terminal client's configuration, read from compras-tui.yaml
// and COMPRAS_* environment variables.
type Config struct {
	ServerURL         string        `mapstructure:"server_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	QuickCreateTarget string        `mapstructure:"quick_create_target"`
	FormsetPrefix     string        `mapstructure:"formset_prefix"`
	LogFile           string        `mapstructure:"log_file"`
	Rules             RulesConfig   `mapstructure:"rules"`
}

// RulesConfig selects which header fields must be set before submitting.
type RulesConfig struct {
	RequireSupplier      bool `mapstructure:"require_proveedor"`
	RequirePaymentMethod bool `mapstructure:"require_forma_pago"`
	RequireEmployee      bool `mapstructure:"require_empleado"`
	RequireQuantity      bool `mapstructure:"require_cantidad"`
}

func setDefaults(v *viper.Viper) {
	def := orderform.DefaultRules()
	v.SetDefault("server_url", "http://127.0.0.1:8090")
	v.SetDefault("timeout", "10s")
	v.SetDefault("quick_create_target", "row")
	v.SetDefault("formset_prefix", orderform.DefaultPrefix)
	v.SetDefault("log_file", "compras-tui.log")
	v.SetDefault("rules.require_proveedor", def.RequireSupplier)
	v.SetDefault("rules.require_forma_pago", def.RequirePaymentMethod)
	v.SetDefault("rules.require_empleado", def.RequireEmployee)
	v.SetDefault("rules.require_cantidad", def.RequireQuantity)
}

// LoadConfig reads the configuration. With an empty path it looks for
// compras-tui.yaml in the working directory and in ~/.config/compras, and a
// missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("COMPRAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("compras-tui")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/compras")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values LoadConfig cannot default.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return errors.New("config: server_url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.Target(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.FormsetPrefix == "" {
		return errors.New("config: formset_prefix is required")
	}
	return nil
}

// Target is the configured quick-create target.
func (c *Config) Target() (quickcreate.Target, error) {
	return quickcreate.ParseTarget(c.QuickCreateTarget)
}

// OrderRules converts the rules section for the order form.
func (c *Config) OrderRules() orderform.Rules {
	return orderform.Rules{
		RequireSupplier:      c.Rules.RequireSupplier,
		RequirePaymentMethod: c.Rules.RequirePaymentMethod,
		RequireEmployee:      c.Rules.RequireEmployee,
		RequireQuantity:      c.Rules.RequireQuantity,
	}
}
