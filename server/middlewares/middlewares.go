package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/realmkit/realmfeed/utils"
	Logger "github.com/realmkit/realmfeed/utils/log"
)

var (
	// sessionStore resolves bearer tokens to member ids. Before using any
	// middleware, make sure it's initialized via Setup.
	sessionStore *utils.RedisSessionStore
)

// Setup initializes all package scoped variables that are needed to
// perform middleware functionalities. This function must be called before
// any middleware is used.
func Setup() {
	store, err := utils.GetRedisSessionStore()
	if err != nil {
		// Abort directly if the session store isn't reachable, which is
		// crucial for server side authorization.
		Logger.Log.Fatalf("fail to setup session store: %s", err.Error())
	}
	sessionStore = store
}

// Auth middleware fetches the bearer token in the http header, looking
// for field "token". It resolves the token to a member id and adds a new
// field "sub" storing it. It returns error on token not provided or token
// unknown/expired.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("token")
		if token == "" {
			token = c.Query("token")
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  "empty auth token",
			})
			c.Abort()
			return
		}

		userId, err := sessionStore.LookupUser(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  err.Error(),
			})
			c.Abort()
			return
		}
		if userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": utils.ErrorTokenAuthFail,
				"msg":  "unknown or expired token",
			})
			c.Abort()
			return
		}

		// Successfully resolved the token, replace the header field "token"
		// with the member's sub (id).
		c.Request.Header.Del("token")
		c.Request.Header.Set("sub", userId)

		// before request
		c.Next()
	}
}
