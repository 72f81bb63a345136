package usbconfig

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ardnew/usbcore/usbcore"
)

// Config is the demo binary's runtime configuration.
type Config struct {
	AddressMode      string `mapstructure:"address_mode"`
	MaxEndpoints     uint8  `mapstructure:"max_endpoints"`
	EP0MaxPacketSize uint16 `mapstructure:"ep0_max_packet_size"`
	SelfPowered      bool   `mapstructure:"self_powered"`
	VendorID         uint16 `mapstructure:"vendor_id"`
	ProductID        uint16 `mapstructure:"product_id"`
}

// defaults mirror usbcore's own package defaults so an absent config file
// behaves identically to usbcore.New with no options.
func defaults() Config {
	return Config{
		AddressMode:      "late",
		MaxEndpoints:     7,
		EP0MaxPacketSize: 64,
		VendorID:         0x1209, // pid.codes test VID
		ProductID:        0x0001,
	}
}

// Load reads configuration from the built-in defaults, the file at path (if
// non-empty), and $USBDEVICE_SIM_* env vars, in increasing precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("usbdevice_sim")
	v.AutomaticEnv()

	d := defaults()
	v.SetDefault("address_mode", d.AddressMode)
	v.SetDefault("max_endpoints", d.MaxEndpoints)
	v.SetDefault("ep0_max_packet_size", d.EP0MaxPacketSize)
	v.SetDefault("self_powered", d.SelfPowered)
	v.SetDefault("vendor_id", d.VendorID)
	v.SetDefault("product_id", d.ProductID)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Options translates Config into usbcore.Option values.
func (c Config) Options() ([]usbcore.Option, error) {
	var mode usbcore.AddressMode
	switch c.AddressMode {
	case "", "late":
		mode = usbcore.AddressModeLate
	case "early":
		mode = usbcore.AddressModeEarly
	default:
		return nil, fmt.Errorf("unknown address_mode %q: must be \"early\" or \"late\"", c.AddressMode)
	}
	opts := []usbcore.Option{
		usbcore.WithAddressMode(mode),
		usbcore.WithMaxEndpoints(c.MaxEndpoints),
		usbcore.WithEP0MaxPacketSize(c.EP0MaxPacketSize),
	}
	if c.SelfPowered {
		opts = append(opts, usbcore.WithSelfPowered(true))
	}
	return opts, nil
}
