// Package currency provides the ISO 4217 currency code type and the registry
// used to validate codes before any rate lookup happens.
package currency

import (
	"strings"
	"sync"

	"github.com/moneydash/fx/pkg/domain"
)

// Code represents a canonical (uppercase) 3-letter currency code.
type Code string

// Common currency codes for convenience.
const (
	USD Code = "USD" // US Dollar
	EUR Code = "EUR" // Euro
	GBP Code = "GBP" // British Pound
	JPY Code = "JPY" // Japanese Yen
	IDR Code = "IDR" // Indonesian Rupiah
)

// DefaultCode is the fallback reporting currency when a user has no
// preference stored.
const DefaultCode = USD

// String returns the string representation of the currency code.
func (c Code) String() string {
	return string(c)
}

// wellFormed reports whether the code has the ISO 4217 shape:
// exactly three uppercase ASCII letters.
func (c Code) wellFormed() bool {
	if len(c) != 3 {
		return false
	}
	return c[0] >= 'A' && c[0] <= 'Z' &&
		c[1] >= 'A' && c[1] <= 'Z' &&
		c[2] >= 'A' && c[2] <= 'Z'
}

// Meta holds currency metadata.
type Meta struct {
	Name     string
	Symbol   string
	Decimals int
}

// Registry is a goroutine-safe table of known currencies. Input codes are
// case-insensitive; they are canonicalized to uppercase before lookup.
type Registry struct {
	mu         sync.RWMutex
	currencies map[Code]Meta
}

// NewRegistry creates a registry seeded with the common ISO 4217 currencies.
func NewRegistry() *Registry {
	r := &Registry{currencies: make(map[Code]Meta)}

	defaults := map[Code]Meta{
		"USD": {Name: "US Dollar", Symbol: "$", Decimals: 2},
		"EUR": {Name: "Euro", Symbol: "€", Decimals: 2},
		"GBP": {Name: "British Pound", Symbol: "£", Decimals: 2},
		"JPY": {Name: "Japanese Yen", Symbol: "¥", Decimals: 0},
		"CHF": {Name: "Swiss Franc", Symbol: "CHF", Decimals: 2},
		"CAD": {Name: "Canadian Dollar", Symbol: "C$", Decimals: 2},
		"AUD": {Name: "Australian Dollar", Symbol: "A$", Decimals: 2},
		"NZD": {Name: "New Zealand Dollar", Symbol: "NZ$", Decimals: 2},
		"CNY": {Name: "Chinese Yuan", Symbol: "¥", Decimals: 2},
		"HKD": {Name: "Hong Kong Dollar", Symbol: "HK$", Decimals: 2},
		"SGD": {Name: "Singapore Dollar", Symbol: "S$", Decimals: 2},
		"SEK": {Name: "Swedish Krona", Symbol: "kr", Decimals: 2},
		"NOK": {Name: "Norwegian Krone", Symbol: "kr", Decimals: 2},
		"DKK": {Name: "Danish Krone", Symbol: "kr", Decimals: 2},
		"PLN": {Name: "Polish Zloty", Symbol: "zł", Decimals: 2},
		"CZK": {Name: "Czech Koruna", Symbol: "Kč", Decimals: 2},
		"INR": {Name: "Indian Rupee", Symbol: "₹", Decimals: 2},
		"IDR": {Name: "Indonesian Rupiah", Symbol: "Rp", Decimals: 2},
		"MYR": {Name: "Malaysian Ringgit", Symbol: "RM", Decimals: 2},
		"THB": {Name: "Thai Baht", Symbol: "฿", Decimals: 2},
		"KRW": {Name: "South Korean Won", Symbol: "₩", Decimals: 0},
		"KWD": {Name: "Kuwaiti Dinar", Symbol: "د.ك", Decimals: 3},
		"EGP": {Name: "Egyptian Pound", Symbol: "£", Decimals: 2},
		"AED": {Name: "UAE Dirham", Symbol: "د.إ", Decimals: 2},
		"SAR": {Name: "Saudi Riyal", Symbol: "﷼", Decimals: 2},
		"TRY": {Name: "Turkish Lira", Symbol: "₺", Decimals: 2},
		"BRL": {Name: "Brazilian Real", Symbol: "R$", Decimals: 2},
		"MXN": {Name: "Mexican Peso", Symbol: "$", Decimals: 2},
		"ZAR": {Name: "South African Rand", Symbol: "R", Decimals: 2},
		"RUB": {Name: "Russian Ruble", Symbol: "₽", Decimals: 2},
		"ILS": {Name: "Israeli New Shekel", Symbol: "₪", Decimals: 2},
	}
	for code, meta := range defaults {
		r.currencies[code] = meta
	}

	return r
}

// Parse canonicalizes a raw code (trim, uppercase) and validates it against
// the registry. Returns domain.ErrInvalidCurrencyCode for malformed or
// unknown codes.
func (r *Registry) Parse(raw string) (Code, error) {
	code := Code(strings.ToUpper(strings.TrimSpace(raw)))
	if !code.wellFormed() {
		return "", domain.ErrInvalidCurrencyCode
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.currencies[code]; !ok {
		return "", domain.ErrInvalidCurrencyCode
	}
	return code, nil
}

// Register adds or updates a currency.
func (r *Registry) Register(code Code, meta Meta) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currencies[code] = meta
}

// Unregister removes a currency, reporting whether it was present.
func (r *Registry) Unregister(code Code) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.currencies[code]
	delete(r.currencies, code)
	return ok
}

// Get returns metadata for a registered code.
func (r *Registry) Get(code Code) (Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.currencies[code]
	return meta, ok
}

// IsSupported checks if a currency code is registered.
func (r *Registry) IsSupported(code Code) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.currencies[code]
	return ok
}

// ListSupported returns all registered currency codes.
func (r *Registry) ListSupported() []Code {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]Code, 0, len(r.currencies))
	for code := range r.currencies {
		codes = append(codes, code)
	}
	return codes
}

// Count returns the number of registered currencies.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.currencies)
}
