package gateway

// PasswordHasher abstracts salted password hashing. Plaintext passwords
// never leave the account use case.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil when the password matches the stored hash
	Compare(hash, password string) error
}

// TokenIssuer abstracts signed session tokens
type TokenIssuer interface {
	// Issue creates a signed token carrying the user id
	Issue(userID uint64) (string, error)
	// Verify validates a token and returns the user id it carries
	//
	// Possible errors:
	// - ErrInvalidToken: If the token is malformed, tampered or expired
	Verify(token string) (uint64, error)
}
