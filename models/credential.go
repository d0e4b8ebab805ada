package models

// Credential is the bearer token + email pair proving an authenticated
// session. It is overwritten wholesale on each login.
type Credential struct {
	Token string `json:"token"`
	Email string `json:"email"`
}
