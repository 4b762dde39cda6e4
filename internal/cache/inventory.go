package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	RatingKeyPrefix = "user:%d:rating"
)

const (
	UserTTL   = 5 * time.Minute
	RatingTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RatingKey(userID uint) string {
	return fmt.Sprintf(RatingKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRating(ctx context.Context, userID uint) {
	Invalidate(ctx, RatingKey(userID))
}
