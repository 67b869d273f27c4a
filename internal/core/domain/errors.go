package domain

import "errors"

var (
	// ErrUnauthorized is thrown when the requester of an operation did not supply its signer capability
	ErrUnauthorized = errors.New("operation requires the requester to be a signer")
	// ErrVaultAlreadyInitialized ...
	ErrVaultAlreadyInitialized = errors.New("vault is already initialized")
	// ErrVaultNotInitialized is thrown when depositing to or withdrawing from a vault slot that was never created
	ErrVaultNotInitialized = errors.New("vault is not initialized")
	// ErrInvalidAccountAddress is thrown when a caller-supplied slot address does not match the derived canonical one
	ErrInvalidAccountAddress = errors.New("account address does not match the derived address")
	// ErrInvalidRecordData is thrown when a record buffer is malformed, or missing where one is required
	ErrInvalidRecordData = errors.New("record data is missing or malformed")
	// ErrAmountOverflow ...
	ErrAmountOverflow = errors.New("amount overflows the ledger balance")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("insufficient funds for the requested amount")
	// ErrInvalidIdentity ...
	ErrInvalidIdentity = errors.New("identity must be 32 bytes")
)
