package logctx

import (
	"context"
	"csvcot/internal/global"
)

// Returns a context whose tag list ends with newTags (broad to specific).
// The parent's list is copied, never modified.
func AppendCtxTag(ctx context.Context, newTags ...string) (newCtx context.Context) {
	old := GetTagList(ctx)
	tags := make([]string, 0, len(old)+len(newTags))
	tags = append(tags, old...)
	tags = append(tags, newTags...)

	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Drops the most specific tag
func RemoveLastCtxTag(ctx context.Context) (newCtx context.Context) {
	old := GetTagList(ctx)
	if len(old) == 0 {
		newCtx = ctx
		return
	}
	tags := append([]string(nil), old[:len(old)-1]...)

	newCtx = context.WithValue(ctx, global.LogTagsKey, tags)
	return
}

// Tag list carried by ctx, empty when none
func GetTagList(ctx context.Context) (tags []string) {
	tags, validAssert := ctx.Value(global.LogTagsKey).([]string)
	if !validAssert {
		tags = []string{}
	}
	return
}
