package cache

import (
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOption tunes the client built by NewRedisCache.
type RedisOption func(*redisSettings)

type redisSettings struct {
	redis.Options
	prefix string
}

func WithRedisAddr(host string, port int) RedisOption {
	return func(s *redisSettings) {
		s.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	}
}

// WithRedisAuth selects the logical database; password may be empty.
func WithRedisAuth(password string, db int) RedisOption {
	return func(s *redisSettings) {
		s.Password = password
		s.DB = db
	}
}

func WithRedisPoolSize(n int) RedisOption {
	return func(s *redisSettings) {
		if n > 0 {
			s.PoolSize = n
		}
	}
}

// WithRedisPrefix namespaces every key, so several deployments can share
// one Redis.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *redisSettings) {
		s.prefix = prefix
	}
}

// MemoryOption tunes NewMemoryCache.
type MemoryOption func(*MemoryCache)

// WithMemoryMaxSize bounds the entry count; the least recently used entry
// is evicted past it.
func WithMemoryMaxSize(n int) MemoryOption {
	return func(mc *MemoryCache) {
		mc.maxSize = n
	}
}

func WithMemoryCleanup(interval time.Duration) MemoryOption {
	return func(mc *MemoryCache) {
		mc.cleanup = interval
	}
}

// LayeredOption tunes NewLayeredCache.
type LayeredOption func(*LayeredCache)

// WithLayeredMemoryTTL caps how long an entry is served from L1.
func WithLayeredMemoryTTL(ttl time.Duration) LayeredOption {
	return func(lc *LayeredCache) {
		if ttl > 0 {
			lc.memoryTTL = ttl
		}
	}
}
