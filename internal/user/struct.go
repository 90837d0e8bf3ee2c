package user

// User is a stored account. PasswordHash holds the bcrypt hash, never the
// plaintext, and never leaves the process in a response body.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// Summary is the outward projection of a User.
type Summary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
