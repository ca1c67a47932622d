package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the backend selected by target:
//
//	""                              NullCache
//	redis://... or rediss://...     RedisCache
//	mongodb://... or mongodb+srv:// MongoCache
//	file:///path or a plain path    FileCache
func Open(ctx context.Context, target string) (Cache, error) {
	switch {
	case target == "":
		return NewNullCache(), nil
	case strings.HasPrefix(target, "redis://"), strings.HasPrefix(target, "rediss://"):
		return NewRedisCache(ctx, target)
	case strings.HasPrefix(target, "mongodb://"), strings.HasPrefix(target, "mongodb+srv://"):
		return NewMongoCache(ctx, target)
	case strings.HasPrefix(target, "file://"):
		return NewFileCache(strings.TrimPrefix(target, "file://"))
	case strings.Contains(target, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, target)
	}
	return NewFileCache(target)
}
