package domain

const (
	// UserVaultSeed is the derivation tag of per-depositor record addresses.
	UserVaultSeed = "user_vault"
	// VaultAuthoritySeed is the derivation tag of the vault-wide signing authority.
	VaultAuthoritySeed = "vault"
)
