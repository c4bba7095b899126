// Package idempotency rejects replayed mutation requests keyed by the
// Idempotency-Key header, backed by redis SetNX.
package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const Header = "Idempotency-Key"

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(method, path, key string) string {
	return fmt.Sprintf("idem:%s:%s:%s", method, path, key)
}

// Seen records the key and reports whether it was already present.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Middleware rejects a request whose Idempotency-Key was already used for
// the same method and path. Requests without the header pass through, as
// does everything when redis is unreachable; availability wins over replay
// protection here.
func Middleware(log *slog.Logger, store *Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(Header))
			if store == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			seen, err := store.Seen(r.Context(), store.Key(r.Method, r.URL.Path, key))
			if err != nil {
				log.Error("idempotency check failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				http.Error(w, "duplicate request", http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
