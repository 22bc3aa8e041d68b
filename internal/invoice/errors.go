package invoice

import "errors"

var (
	// ErrNotFound is returned when an invoice does not exist or is deleted.
	ErrNotFound = errors.New("invoice not found")

	// ErrMissingCustomer is returned by Submit when no customer is selected.
	ErrMissingCustomer = errors.New("invoice draft has no customer")

	// ErrMinimumItems is returned when removing the last remaining line item.
	ErrMinimumItems = errors.New("invoice must keep at least one line item")

	// ErrPreconditionNotMet is returned by AddItem while the last item is
	// still incomplete.
	ErrPreconditionNotMet = errors.New("last line item is incomplete")

	// ErrItemIndex is returned for an out-of-range line item index.
	ErrItemIndex = errors.New("line item index out of range")

	// ErrUnknownField is returned by SetItemField for a field name it
	// does not recognize.
	ErrUnknownField = errors.New("unknown line item field")

	// ErrNoItems is returned when hydrating a draft from a persisted invoice
	// that carries no line items. The store enforces the minimum, so this
	// indicates corrupted data rather than user error.
	ErrNoItems = errors.New("persisted invoice has no line items")

	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submit on the same draft has not finished.
	ErrSubmitInFlight = errors.New("submit already in flight")
)
