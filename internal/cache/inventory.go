package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	PostKeyPrefix = "post:%d"
	PostsListKeyV = "posts:list"
	UserKeyPrefix = "user:%d"
)

const (
	PostTTL = 30 * time.Minute
	ListTTL = 1 * time.Minute
	UserTTL = 5 * time.Minute
)

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func PostsListKey() string {
	return PostsListKeyV
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached post entry. Called whenever anything that
// feeds the computed counts changes: post mutation, new comment, reaction
// toggle.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, PostsListKey())
}
