package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency guards POST endpoints against duplicate submissions carrying
// the same Idempotency-Key header. A cached response is replayed; an
// in-flight duplicate is rejected with 409.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		userID := strconv.FormatUint(uint64(c.GetUint("user_id")), 10)
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// Short-lived lock so a crashed request cannot block the key forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already in progress",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
