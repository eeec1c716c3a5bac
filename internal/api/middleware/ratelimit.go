package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
)

const (
	defaultRateLimit   = 60
	defaultRateWindow  = time.Minute
	defaultRatePrefix  = "grooming:rl"
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
)

// Counter атомарно увеличивает счетчик key и возвращает новое значение.
// Окно window начинается с первого инкремента.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RedisCounter счетчик фиксированного окна в Redis
type RedisCounter struct {
	client redis.Scripter
}

// NewRedisCounter создает счетчик поверх клиента go-redis
func NewRedisCounter(client redis.Scripter) *RedisCounter {
	return &RedisCounter{client: client}
}

// Incr выполняет INCR + PEXPIRE одним скриптом
func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}

// RateLimiter ограничивает число запросов клиента в фиксированном окне.
// При недоступности счетчика запросы пропускаются.
type RateLimiter struct {
	counter Counter
	limit   int64
	window  time.Duration
	prefix  string
	logger  Logger
}

// NewRateLimiter создает rate limiter. Нулевые limit и window заменяются значениями по умолчанию.
func NewRateLimiter(counter Counter, limit int, window time.Duration, prefix string, logger Logger) *RateLimiter {
	if limit <= 0 {
		limit = defaultRateLimit
	}
	if window <= 0 {
		window = defaultRateWindow
	}
	if prefix == "" {
		prefix = defaultRatePrefix
	}
	return &RateLimiter{
		counter: counter,
		limit:   int64(limit),
		window:  window,
		prefix:  prefix,
		logger:  logger,
	}
}

// Middleware оборачивает handler проверкой лимита
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl == nil || rl.counter == nil {
			next.ServeHTTP(w, r)
			return
		}

		key := rl.prefix + ":" + clientKey(r)
		count, err := rl.counter.Incr(r.Context(), key, rl.window)
		if err != nil {
			rl.logger.Warn("RateLimiter: counter unavailable, key=%s: %v", key, err)
			next.ServeHTTP(w, r)
			return
		}

		if count > rl.limit {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey выбирает ключ клиента: X-User-ID, иначе IP адрес
func clientKey(r *http.Request) string {
	if userID := r.Header.Get(UserIDHeader); userID != "" {
		return "user:" + userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
