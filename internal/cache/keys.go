package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix             = "user:%d"
	PostKeyPrefix             = "post:%d"
	ResourceCategoryKeyPrefix = "resources:category:%s"
	EventsMonthKeyPrefix      = "events:month:%d-%02d"
	FollowCountsKeyPrefix     = "follows:counts:%d"
	TokenBlacklistKeyPrefix   = "token:blacklist:%s"
)

const (
	UserTTL             = 5 * time.Minute
	PostTTL             = 30 * time.Minute
	ResourceCategoryTTL = 10 * time.Minute
	EventsMonthTTL      = 10 * time.Minute
	FollowCountsTTL     = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func ResourceCategoryKey(category string) string {
	return fmt.Sprintf(ResourceCategoryKeyPrefix, category)
}

func EventsMonthKey(year, month int) string {
	return fmt.Sprintf(EventsMonthKeyPrefix, year, month)
}

func FollowCountsKey(userID uint) string {
	return fmt.Sprintf(FollowCountsKeyPrefix, userID)
}

func TokenBlacklistKey(jti string) string {
	return fmt.Sprintf(TokenBlacklistKeyPrefix, jti)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidateResourceCategory(ctx context.Context, category string) {
	Invalidate(ctx, ResourceCategoryKey(category))
}

func InvalidateEventsMonth(ctx context.Context, year, month int) {
	Invalidate(ctx, EventsMonthKey(year, month))
}

func InvalidateFollowCounts(ctx context.Context, userID uint) {
	Invalidate(ctx, FollowCountsKey(userID))
}
