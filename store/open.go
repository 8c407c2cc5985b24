package store

import (
	"fmt"
	"io"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Options struct {
	Backend   string
	Path      string // file backend
	RedisAddr string // redis backend
	RedisKey  string // redis backend
}

// Open builds the backend named by opts. The returned closer releases any
// connection the backend holds and is never nil.
func Open(opts Options) (Store, io.Closer, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Path), nopCloser{}, nil
	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, nil, fmt.Errorf("store: redis backend needs an address")
		}
		s := NewRedisStore(DialRedis(opts.RedisAddr), opts.RedisKey)
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("store: unknown backend %q", opts.Backend)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
