package dto

import (
	dom "blogapp/internal/domain"
)

// feedTimeLayout matches the weekday/month/day/time/year format the
// feed has always used.
const feedTimeLayout = "Mon Jan 02 15:04:05 2006"

// PostFeedItem is one post in the public JSON feed.
type PostFeedItem struct {
	Subject      string `json:"subject"`
	Content      string `json:"content"`
	Created      string `json:"created"`
	LastModified string `json:"last_modified"`
}

// PostToFeedItem converts a domain post to its feed representation.
func PostToFeedItem(p dom.Post) PostFeedItem {
	return PostFeedItem{
		Subject:      p.Subject,
		Content:      p.Content,
		Created:      p.CreatedAt.Format(feedTimeLayout),
		LastModified: p.LastModified.Format(feedTimeLayout),
	}
}

// PostsToFeed converts posts to the feed array. The feed is always an
// array, single post included.
func PostsToFeed(list []dom.Post) []PostFeedItem {
	out := make([]PostFeedItem, len(list))
	for i := range list {
		out[i] = PostToFeedItem(list[i])
	}
	return out
}
