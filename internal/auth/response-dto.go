package auth

// TokenReturnBody is the envelope handed back on login, registration and
// refresh issuance. Expires is the TTL in seconds as a string,
// ExpiresPrettyPrint the same TTL in human-readable form.
type TokenReturnBody struct {
	Token              string `json:"token"`
	Expires            string `json:"expires"`
	ExpiresPrettyPrint string `json:"expires_pretty_print"`
}
