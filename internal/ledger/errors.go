package ledger

import "errors"

// Expected, recoverable outcomes. Handlers match on these with errors.Is and
// turn them into client errors; anything else is a storage failure.
var (
	ErrDuplicateName     = errors.New("an item with this name already exists")
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidItem       = errors.New("invalid item")
	ErrEmptyCart         = errors.New("cart is empty")
)
