package application

import "errors"

var (
	// ErrInvalidInstruction ...
	ErrInvalidInstruction = errors.New("instruction payload is malformed")
	// ErrInvalidAccountList is thrown when an operation is invoked without the full working set of account slots it declares
	ErrInvalidAccountList = errors.New("operation is missing one or more required accounts")
	// ErrAccountNotWritable ...
	ErrAccountNotWritable = errors.New("account slot is not writable")
)
