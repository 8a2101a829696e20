package recordex

import "time"

type clientConfig struct {
	addrs            []string
	password         string
	defaultPageSize  int
	maxPageSize      int
	maxCandidates    int
	readinessTimeout time.Duration
}

// Option configures the Client.
type Option func(*clientConfig)

// WithRedis sets the Redis address and password.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithAddrs sets multiple database addresses (cluster mode).
func WithAddrs(addrs ...string) Option {
	return func(c *clientConfig) {
		c.addrs = addrs
	}
}

// WithPageSizes sets the default and maximum page size for listings.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(c *clientConfig) {
		c.defaultPageSize = defaultSize
		c.maxPageSize = maxSize
	}
}

// WithMaxCandidates caps the candidate set fetched by the matching engine.
func WithMaxCandidates(n int) Option {
	return func(c *clientConfig) {
		c.maxCandidates = n
	}
}

// WithReadinessTimeout sets how long New waits for the database.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}
