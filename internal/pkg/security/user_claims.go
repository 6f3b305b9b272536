package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "KLPoster"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims carries the session identity issued after Discord login.
type UserClaims struct {
	UserID    uint64   `json:"user_id"`
	DiscordID string   `json:"discord_id"`
	Guilds    []string `json:"guilds"`
	jwt.RegisteredClaims
}
