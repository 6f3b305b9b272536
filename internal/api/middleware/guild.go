package middleware

import (
	"KLPoster/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireGuild rejects users whose session was issued without membership
// in the configured guild.
func RequireGuild(guildID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		guilds := c.GetStringSlice("guilds")

		member := false
		for _, id := range guilds {
			if id == guildID {
				member = true
				break
			}
		}

		if !member {
			response.Fail(c, response.Forbidden, "not a member of the required guild")
			c.Abort()
			return
		}

		c.Next()
	}
}
