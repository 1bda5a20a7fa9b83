package service

import (
	"testing"
	"time"

	"github.com/stackmoneyup/backend/internal/models"
)

func post(slug, titleEN, titleIT, category string, tags ...string) models.Post {
	return models.Post{
		Slug:     slug,
		TitleEN:  titleEN,
		TitleIT:  titleIT,
		Category: category,
		Tags:     tags,
	}
}

func TestFilterPosts(t *testing.T) {
	posts := []models.Post{
		post("saving-101", "Saving Basics", "Basi del Risparmio", "savings", "budget"),
		post("etf-intro", "Intro to ETFs", "Introduzione agli ETF", "investing", "etf", "stocks"),
		post("tax-guide", "Tax Guide", "Guida alle Tasse", "taxes"),
	}

	t.Run("empty query returns everything", func(t *testing.T) {
		got := FilterPosts(posts, "", "", nil)
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("matches either language title", func(t *testing.T) {
		got := FilterPosts(posts, "risparmio", "", nil)
		if len(got) != 1 || got[0].Slug != "saving-101" {
			t.Fatalf("got %d results, want saving-101", len(got))
		}
		got = FilterPosts(posts, "ETF", "", nil)
		if len(got) != 1 || got[0].Slug != "etf-intro" {
			t.Fatalf("got %d results, want etf-intro", len(got))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		got := FilterPosts(posts, "", "taxes", nil)
		if len(got) != 1 || got[0].Slug != "tax-guide" {
			t.Fatalf("got %d results, want tax-guide", len(got))
		}
		if got := FilterPosts(posts, "", "all", nil); len(got) != 3 {
			t.Errorf("category 'all' filtered posts: %d", len(got))
		}
	})

	t.Run("any tag matches", func(t *testing.T) {
		got := FilterPosts(posts, "", "", []string{"stocks", "budget"})
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
	})

	t.Run("query and filters combine", func(t *testing.T) {
		got := FilterPosts(posts, "intro", "investing", []string{"etf"})
		if len(got) != 1 || got[0].Slug != "etf-intro" {
			t.Fatalf("got %d results, want etf-intro", len(got))
		}
		if got := FilterPosts(posts, "intro", "taxes", nil); len(got) != 0 {
			t.Errorf("mismatched category still returned %d posts", len(got))
		}
	})
}

func TestSortPostsByPublishedAt(t *testing.T) {
	at := func(n int) *time.Time { d := day(n); return &d }

	posts := []models.Post{
		{Slug: "old", PublishedAt: at(1)},
		{Slug: "draft", CreatedAt: day(9)},
		{Slug: "new", PublishedAt: at(5)},
		{Slug: "older-draft", CreatedAt: day(2)},
	}
	SortPostsByPublishedAt(posts)

	want := []string{"new", "old", "draft", "older-draft"}
	for i, w := range want {
		if posts[i].Slug != w {
			t.Fatalf("position %d = %s, want %s", i, posts[i].Slug, w)
		}
	}
}
