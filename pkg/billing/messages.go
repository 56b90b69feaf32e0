package billing

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// Messages is the catalog of user-facing billing texts. The defaults are
// English; deployments load their own catalog from YAML.
type Messages struct {
	CouponUsed         string `yaml:"coupon_used"`
	CouponLimitReached string `yaml:"coupon_limit_reached"`
	NoSwitchToLifetime string `yaml:"no_switch_to_lifetime"`
	PaymentProcessor   string `yaml:"payment_processor"`
}

// DefaultMessages returns the built-in English catalog.
func DefaultMessages() *Messages {
	return &Messages{
		CouponUsed:         "This coupon has already been used",
		CouponLimitReached: "This coupon's usage limit has been reached",
		NoSwitchToLifetime: "Switching a recurring subscription to a lifetime plan is not allowed",
		PaymentProcessor:   "Payment processor",
	}
}

// LoadMessages reads a YAML catalog, filling missing keys from the
// defaults so a partial catalog stays usable.
func LoadMessages(r io.Reader) (*Messages, error) {
	m := DefaultMessages()
	if err := yaml.NewDecoder(r).Decode(m); err != nil {
		return nil, errors.Join(ErrFailedToLoadMessages, err)
	}
	return m, nil
}
