package service

import (
	"sort"
	"strings"

	"github.com/stackmoneyup/backend/internal/models"
)

// FilterPosts narrows a post list by free-text query, category and tags
// entirely in memory. It backs the search endpoint when the database-side
// search is unavailable, and mirrors its matching: the query is looked for
// case-insensitively in either language's title and excerpt, in the category
// and in the tag list. An empty query matches everything.
func FilterPosts(posts []models.Post, query, category string, tags []string) []models.Post {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		if len(tags) > 0 && !hasAnyTag(p, tags) {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasAnyTag(p models.Post, tags []string) bool {
	for _, t := range tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

func matchesQuery(p models.Post, q string) bool {
	haystacks := []string{
		p.TitleEN, p.TitleIT,
		p.ExcerptEN, p.ExcerptIT,
		p.Category,
		strings.Join(p.Tags, " "),
	}
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), q) {
			return true
		}
	}
	return false
}

// SortPostsByPublishedAt orders posts newest published first. Posts without a
// publication date sort last, by creation date.
func SortPostsByPublishedAt(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].PublishedAt, posts[j].PublishedAt
		switch {
		case a != nil && b != nil:
			return a.After(*b)
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
	})
}
