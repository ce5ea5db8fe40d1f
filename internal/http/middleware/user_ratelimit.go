package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// UserRateLimit limits writes per signed-in user (not per IP) using Redis.
// Must run after LoginRequired. Without Redis it lets everything through.
func UserRateLimit(maxWrites int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		user, ok := CurrentUser(c)
		if !ok {
			c.Next()
			return
		}

		key := "user_rl:" + strconv.FormatInt(user.ID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		ctx := c.Request.Context()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-UserRateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		c.Header("X-UserRateLimit-Limit", strconv.Itoa(maxWrites))
		c.Header("X-UserRateLimit-Remaining", strconv.FormatInt(max(0, int64(maxWrites)-val), 10))

		if val > int64(maxWrites) {
			RLBlocked.WithLabelValues("user:" + c.FullPath()).Inc()
			c.String(http.StatusTooManyRequests, "Too many changes, slow down.")
			c.Abort()
			return
		}

		RLRequests.WithLabelValues("user:" + c.FullPath()).Inc()
		c.Next()
	}
}
