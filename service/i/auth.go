package i

// Authenticator verifies operator credentials and issues access tokens.
type Authenticator interface {
	SignIn(operator, key string) (string, error)
}
