package dedupe

import "time"

// New picks the redis store when addr is set and the memory store otherwise
func New(addr string, ttl time.Duration) (Store, error) {
	if addr == "" {
		return NewMemory(ttl), nil
	}
	return NewRedis(addr, ttl)
}
