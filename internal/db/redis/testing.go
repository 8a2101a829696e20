package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an arbitrary (typically mocked) rueidis client.
func NewStoreForTest(client rueidis.Client) *Store {
	return &Store{client: client}
}
