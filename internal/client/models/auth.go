package models

// TokenPair is the access/refresh credential pair issued by the backend.
// Both tokens are opaque to the client; expiry is discovered reactively
// through a 401 response, never decoded locally.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthPayload is the decoded body of a successful login (or of a register
// response that auto-logs the new account in).
type AuthPayload struct {
	Tokens TokenPair
	User   User
}

// RegisterRequest carries the fields of the registration form.
type RegisterRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
}
