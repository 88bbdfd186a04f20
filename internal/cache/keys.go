package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	BusinessKeyPrefix = "business:%d"
	UserKeyPrefix     = "user:%d"
)

const (
	BusinessTTL = 10 * time.Minute
	UserTTL     = 5 * time.Minute
)

func BusinessKey(businessID uint) string {
	return fmt.Sprintf(BusinessKeyPrefix, businessID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateBusiness(ctx context.Context, businessID uint) {
	Invalidate(ctx, BusinessKey(businessID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
