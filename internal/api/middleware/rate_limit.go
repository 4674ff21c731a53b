package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/d60-Lab/board-api/pkg/response"
)

const MsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도하세요."

// clientLimiter 每个客户端 IP 一个令牌桶
type clientLimiter struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*rate.Limiter
}

func (l *clientLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.clients[key]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.clients[key] = lim
	}
	return lim
}

// RateLimit 令牌桶限流
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	l := &clientLimiter{rps: rate.Limit(rps), burst: burst, clients: make(map[string]*rate.Limiter)}
	return func(c *gin.Context) {
		if !l.get(c.ClientIP()).Allow() {
			response.TooManyRequests(c, MsgTooManyRequests)
			return
		}
		c.Next()
	}
}
