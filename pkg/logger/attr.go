package logger

import (
	"log/slog"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// PurchaseID records the purchase identifier under the key "purchase_id".
// If id is nil, it returns an empty Attr.
func PurchaseID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("purchase_id", id)
}

// TransactionID records the ledger row identifier under "transaction_id".
// If id is nil, it returns an empty Attr.
func TransactionID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("transaction_id", id)
}

// TransactionRef records the gateway transaction reference under
// "transaction_ref". Empty references produce an empty Attr.
func TransactionRef(ref string) slog.Attr {
	if ref == "" {
		return slog.Attr{}
	}
	return slog.String("transaction_ref", ref)
}

// Gateway records the payment gateway identifier under the key "gateway".
func Gateway(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("gateway", name)
}

// Package records the billable package name under the key "package".
func Package(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("package", name)
}

// Amount records a monetary amount with its currency under the key "amount".
func Amount(amount int64, currency string) slog.Attr {
	return Group("amount",
		slog.Int64("value", amount),
		slog.String("currency", currency),
	)
}

// Component records the subsystem emitting the record under "component".
func Component(name string) slog.Attr {
	if name == "" {
		return slog.Attr{}
	}
	return slog.String("component", name)
}
