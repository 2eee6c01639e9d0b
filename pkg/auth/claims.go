package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenPayload is what the login flow knows about the user at mint time.
type AccessTokenPayload struct {
	UserID int64
	Email  string
	Roles  []string
	JTI    string
}

// AccessTokenClaims is the JWT claim set carried by portal access tokens.
type AccessTokenClaims struct {
	UserID int64    `json:"userId"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the token carries the given role name.
func (c *AccessTokenClaims) HasRole(name string) bool {
	for _, r := range c.Roles {
		if r == name {
			return true
		}
	}
	return false
}
