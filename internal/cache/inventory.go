package cache

import (
	"context"
	"fmt"
	"time"
)

// Key layout. Post rows are deliberately not cached: detail and feed reads
// carry viewer-relative like and follow state, so a shared entry would serve
// one viewer's annotations to another.
const (
	UserKeyPrefix = "user:%d"
	TagListKey    = "tags:all"
)

const (
	UserTTL    = 5 * time.Minute
	TagListTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTags(ctx context.Context) {
	Invalidate(ctx, TagListKey)
}
