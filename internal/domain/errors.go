package domain

import "errors"

// Sentinel errors for the transactional core. Accounts, customers and
// repositories return these (optionally wrapped) so callers can match with
// errors.Is. The core never suppresses one of these internally; surfacing
// them is the caller's contract.
var (
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrPINRequired        = errors.New("pin required")
	ErrInvalidPIN         = errors.New("invalid pin")
	ErrCustomerLocked     = errors.New("customer locked after too many failed pin attempts")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateCustomer  = errors.New("customer already exists")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrOwnershipMismatch  = errors.New("account does not belong to this customer")
	ErrUnknownAccountKind = errors.New("unknown account kind")
)
