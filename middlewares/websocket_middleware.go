package middlewares

import (
	"github.com/gin-gonic/gin"

	"hoteldine/utils"
)

// WebSocketAuthMiddleware authenticates upgrade requests via a token
// query parameter, since browsers cannot set headers on WebSocket dials.
func WebSocketAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.AbortWithStatus(401)
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil {
			c.AbortWithStatus(401)
			return
		}

		c.Set("role", claims.Role)
		c.Set("user_id", claims.UserID)
		if claims.HotelID != nil {
			c.Set("hotel_id", *claims.HotelID)
		}

		c.Next()
	}
}
