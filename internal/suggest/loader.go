package suggest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/mesh-intelligence/formkit/pkg/types"
)

// SourceLoader loads candidate values for an "f:" locator.
//
// Accepts reports whether the loader understands the locator. Load returns
// the values; it returns an error wrapping ErrSourceNotFound when the
// locator names nothing.
type SourceLoader interface {
	Accepts(locator string) bool
	Load(ctx context.Context, locator string) ([]string, error)
}

// FileLoader reads newline-delimited files. It accepts every locator, so it
// belongs last in a loader list.
type FileLoader struct {
	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string
}

// Accepts implements SourceLoader.
func (FileLoader) Accepts(string) bool { return true }

// Load implements SourceLoader.
func (l FileLoader) Load(_ context.Context, locator string) ([]string, error) {
	path := locator
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", types.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("reading suggestion file %s: %w", path, err)
	}
	return splitLines(string(content)), nil
}

// RedisPrefix marks locators served by RedisLoader: "redis:<key>".
const RedisPrefix = "redis:"

// RedisLoader reads candidate values from a Redis key. Lists keep their
// order; set members are sorted; a string value is split into lines.
type RedisLoader struct {
	client redis.UniversalClient
}

// NewRedisLoader returns a loader reading through client.
func NewRedisLoader(client redis.UniversalClient) (*RedisLoader, error) {
	if client == nil {
		return nil, types.ErrNilClient
	}
	return &RedisLoader{client: client}, nil
}

// Accepts implements SourceLoader.
func (l *RedisLoader) Accepts(locator string) bool {
	return strings.HasPrefix(locator, RedisPrefix)
}

// Load implements SourceLoader.
func (l *RedisLoader) Load(ctx context.Context, locator string) ([]string, error) {
	key := strings.TrimPrefix(locator, RedisPrefix)
	if key == "" {
		return nil, fmt.Errorf("%w: empty redis key", types.ErrInvalidConnection)
	}

	kind, err := l.client.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis type %s: %w", key, err)
	}

	switch kind {
	case "none":
		return nil, fmt.Errorf("%w: redis key %s", types.ErrSourceNotFound, key)
	case "list":
		values, err := l.client.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lrange %s: %w", key, err)
		}
		return values, nil
	case "set":
		values, err := l.client.SMembers(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis smembers %s: %w", key, err)
		}
		sort.Strings(values)
		return values, nil
	case "string":
		value, err := l.client.Get(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("redis get %s: %w", key, err)
		}
		return splitLines(value), nil
	default:
		return nil, fmt.Errorf("%w: redis key %s has type %s", types.ErrInvalidConnection, key, kind)
	}
}
