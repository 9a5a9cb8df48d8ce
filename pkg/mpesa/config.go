package mpesa

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	TokenPath      string        `mapstructure:"token_path"`
	TopUpPath      string        `mapstructure:"topup_path"`
	Timeout        time.Duration `mapstructure:"timeout"`
	ConsumerKey    string        `mapstructure:"consumer_key"`
	ConsumerSecret string        `mapstructure:"consumer_secret"`
	DealerNumber   string        `mapstructure:"dealer_number"`
	DealerPin      string        `mapstructure:"dealer_pin"`
}

var ErrMissingCredentials = errors.New("mpesa: missing credentials")

// Validate reports every required setting that is empty.
func (c Config) Validate() error {
	var missing []string

	if c.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if c.ConsumerKey == "" {
		missing = append(missing, "MPESA_CONSUMER_KEY")
	}
	if c.ConsumerSecret == "" {
		missing = append(missing, "MPESA_CONSUMER_SECRET")
	}
	if c.DealerNumber == "" {
		missing = append(missing, "DEALERNUMBER")
	}
	if c.DealerPin == "" {
		missing = append(missing, "DEALERPIN")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredentials, strings.Join(missing, ", "))
	}

	return nil
}
