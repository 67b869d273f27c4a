package transfer

import "errors"

var (
	// ErrAccountNotFound ...
	ErrAccountNotFound = errors.New("holding account not found")
	// ErrAccountAlreadyExists is thrown when opening a holding account that exists with a different controlling authority
	ErrAccountAlreadyExists = errors.New("holding account already exists with a different authority")
	// ErrUnauthorizedTransfer is thrown when the presented credential does not control the source account
	ErrUnauthorizedTransfer = errors.New("authority does not control the source account")
	// ErrInsufficientBalance ...
	ErrInsufficientBalance = errors.New("insufficient balance on the source account")
	// ErrBalanceOverflow ...
	ErrBalanceOverflow = errors.New("transfer overflows the destination balance")
)
