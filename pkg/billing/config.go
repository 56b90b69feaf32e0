package billing

import "github.com/onteko/billingkit/pkg/config"

// Config carries the billing policy switches.
type Config struct {
	// SwitchRecurringToLifetimeAllowed permits purchasing a one-time plan
	// while an active recurring subscription exists for the same package.
	SwitchRecurringToLifetimeAllowed bool `env:"BILLING_SWITCH_TO_LIFETIME_ALLOWED" envDefault:"true"`

	// DowngradeAllowed permits purchasing a cheaper plan over an existing
	// one. Enforced by package validation, carried here as policy surface.
	DowngradeAllowed bool `env:"BILLING_DOWNGRADE_ALLOWED" envDefault:"true"`

	// DefaultCurrency is used when a plan does not pin its own currency.
	DefaultCurrency string `env:"BILLING_DEFAULT_CURRENCY" envDefault:"USD"`

	// SubscriptionExtendableDays allows grace extension of subscriptions by
	// the given number of days. Zero disables extension.
	SubscriptionExtendableDays int `env:"BILLING_SUBSCRIPTION_EXTENDABLE_DAYS" envDefault:"0"`
}

// DefaultConfig returns the policy defaults used when nothing is loaded
// from the environment.
func DefaultConfig() Config {
	return Config{
		SwitchRecurringToLifetimeAllowed: true,
		DowngradeAllowed:                 true,
		DefaultCurrency:                  "USD",
	}
}

// LoadConfig loads the billing policy from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
