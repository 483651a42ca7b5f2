package domain

// TokenPair is a short-lived access token plus a longer-lived refresh token
// issued for the same subject.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
