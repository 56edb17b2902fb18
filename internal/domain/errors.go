package domain

import "errors"

// Operation failure kinds. Every mutating operation checks its preconditions
// before touching state, so any of these implies zero state change (the one
// exception is ErrListingExpired, which persists the lazy deactivation of the
// expired listing).
var (
	ErrNotAuthorized     = errors.New("not authorized")
	ErrGameNotFound      = errors.New("game not found")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrListingNotFound   = errors.New("listing not found")
	ErrAlreadyListed     = errors.New("asset already listed")
	ErrListingExpired    = errors.New("listing expired")
	ErrListingInactive   = errors.New("listing inactive")
	ErrInvalidRarity     = errors.New("invalid rarity")
	ErrInvalidAssetType  = errors.New("invalid asset type")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Numeric failure codes surfaced to API clients. 100 is reserved for
// authorization failures.
const (
	CodeNotAuthorized     = 100
	CodeGameNotFound      = 101
	CodeAssetNotFound     = 102
	CodeListingNotFound   = 103
	CodeAlreadyListed     = 104
	CodeListingExpired    = 105
	CodeListingInactive   = 106
	CodeInvalidRarity     = 107
	CodeInvalidAssetType  = 108
	CodeInvalidPrice      = 109
	CodeInvalidParameter  = 110
	CodeInsufficientFunds = 111
)

// ErrorCode maps a failure kind to its numeric code. Unknown errors map to 0.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrNotAuthorized):
		return CodeNotAuthorized
	case errors.Is(err, ErrGameNotFound):
		return CodeGameNotFound
	case errors.Is(err, ErrAssetNotFound):
		return CodeAssetNotFound
	case errors.Is(err, ErrListingNotFound):
		return CodeListingNotFound
	case errors.Is(err, ErrAlreadyListed):
		return CodeAlreadyListed
	case errors.Is(err, ErrListingExpired):
		return CodeListingExpired
	case errors.Is(err, ErrListingInactive):
		return CodeListingInactive
	case errors.Is(err, ErrInvalidRarity):
		return CodeInvalidRarity
	case errors.Is(err, ErrInvalidAssetType):
		return CodeInvalidAssetType
	case errors.Is(err, ErrInvalidPrice):
		return CodeInvalidPrice
	case errors.Is(err, ErrInvalidParameter):
		return CodeInvalidParameter
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	default:
		return 0
	}
}
