package service

import (
	"testing"
	"time"

	"github.com/stackmoneyup/backend/internal/models"
)

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func row(id string, parent *string, created time.Time) models.Comment {
	return models.Comment{
		ID:        id,
		PostID:    "p1",
		ParentID:  parent,
		AuthorID:  "u1",
		Content:   "content of " + id,
		Approved:  true,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func ptr(s string) *string { return &s }

func countNodes(roots []*models.Comment) int {
	n := 0
	for _, r := range roots {
		n += 1 + len(r.Replies)
	}
	return n
}

func TestBuildCommentTree(t *testing.T) {
	t.Run("empty input yields empty forest", func(t *testing.T) {
		roots := BuildCommentTree(nil)
		if len(roots) != 0 {
			t.Fatalf("expected empty forest, got %d roots", len(roots))
		}
	})

	t.Run("roots newest first, replies oldest first", func(t *testing.T) {
		rows := []models.Comment{
			row("A", nil, day(2)),
			row("B", nil, day(1)),
			row("C", ptr("A"), day(5)),
			row("D", ptr("A"), day(3)),
		}
		roots := BuildCommentTree(rows)

		if len(roots) != 2 {
			t.Fatalf("expected 2 roots, got %d", len(roots))
		}
		if roots[0].ID != "A" || roots[1].ID != "B" {
			t.Errorf("root order = [%s %s], want [A B]", roots[0].ID, roots[1].ID)
		}
		if roots[0].ReplyCount != 2 || len(roots[0].Replies) != 2 {
			t.Fatalf("A reply_count=%d len(replies)=%d, want 2/2", roots[0].ReplyCount, len(roots[0].Replies))
		}
		if roots[0].Replies[0].ID != "D" || roots[0].Replies[1].ID != "C" {
			t.Errorf("A replies = [%s %s], want [D C]", roots[0].Replies[0].ID, roots[0].Replies[1].ID)
		}
		if roots[1].ReplyCount != 0 || len(roots[1].Replies) != 0 {
			t.Errorf("B reply_count=%d len(replies)=%d, want 0/0", roots[1].ReplyCount, len(roots[1].Replies))
		}
	})

	t.Run("every row appears exactly once when no orphans", func(t *testing.T) {
		rows := []models.Comment{
			row("A", nil, day(2)),
			row("B", nil, day(1)),
			row("C", ptr("A"), day(3)),
			row("D", ptr("B"), day(4)),
			row("E", ptr("B"), day(5)),
		}
		roots := BuildCommentTree(rows)
		if got := countNodes(roots); got != len(rows) {
			t.Errorf("node count = %d, want %d", got, len(rows))
		}
		for _, r := range roots {
			if r.ReplyCount != len(r.Replies) {
				t.Errorf("root %s: reply_count=%d != len(replies)=%d", r.ID, r.ReplyCount, len(r.Replies))
			}
		}
	})

	t.Run("orphaned child is dropped entirely", func(t *testing.T) {
		rows := []models.Comment{
			row("A", nil, day(2)),
			row("B", nil, day(1)),
			row("C", ptr("A"), day(3)),
			row("D", ptr("Z"), day(4)), // Z is not in the set
		}
		roots := BuildCommentTree(rows)
		if got := countNodes(roots); got != 3 {
			t.Fatalf("node count = %d, want 3", got)
		}
		for _, r := range roots {
			if r.ID == "D" {
				t.Error("orphan D surfaced as a root")
			}
			for _, reply := range r.Replies {
				if reply.ID == "D" {
					t.Error("orphan D surfaced as a reply")
				}
			}
		}
	})

	t.Run("idempotent over the same input", func(t *testing.T) {
		rows := []models.Comment{
			row("A", nil, day(2)),
			row("B", nil, day(1)),
			row("C", ptr("A"), day(3)),
			row("D", ptr("A"), day(4)),
		}
		first := BuildCommentTree(rows)
		second := BuildCommentTree(rows)
		if len(first) != len(second) {
			t.Fatalf("root counts differ: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ID != second[i].ID || first[i].ReplyCount != second[i].ReplyCount {
				t.Fatalf("root %d differs between runs", i)
			}
			for j := range first[i].Replies {
				if first[i].Replies[j].ID != second[i].Replies[j].ID {
					t.Fatalf("reply %d/%d differs between runs", i, j)
				}
			}
		}
	})

	t.Run("input slice is not mutated", func(t *testing.T) {
		rows := []models.Comment{
			row("A", nil, day(2)),
			row("C", ptr("A"), day(3)),
		}
		BuildCommentTree(rows)
		if rows[0].ReplyCount != 0 || rows[0].Replies != nil {
			t.Error("builder mutated the input rows")
		}
	})
}

func TestInsertNode(t *testing.T) {
	base := BuildCommentTree([]models.Comment{
		row("A", nil, day(2)),
		row("B", nil, day(1)),
		row("C", ptr("A"), day(3)),
	})

	t.Run("new root is prepended", func(t *testing.T) {
		out := InsertNode(base, row("N", nil, day(9)))
		if len(out) != 3 || out[0].ID != "N" {
			t.Fatalf("expected N first among 3 roots, got %d roots, first %s", len(out), out[0].ID)
		}
		if len(base) != 2 {
			t.Error("snapshot was mutated")
		}
	})

	t.Run("reply is appended and count bumped", func(t *testing.T) {
		out := InsertNode(base, row("N", ptr("A"), day(9)))
		a := out[0]
		if a.ReplyCount != 2 || a.Replies[1].ID != "N" {
			t.Fatalf("A reply_count=%d last=%s, want 2/N", a.ReplyCount, a.Replies[len(a.Replies)-1].ID)
		}
		if base[0].ReplyCount != 1 {
			t.Error("snapshot was mutated")
		}
	})

	t.Run("reply to unknown parent leaves forest unchanged", func(t *testing.T) {
		out := InsertNode(base, row("N", ptr("Z"), day(9)))
		if countNodes(out) != countNodes(base) {
			t.Errorf("forest changed: %d nodes, want %d", countNodes(out), countNodes(base))
		}
	})
}

func TestReplaceNode(t *testing.T) {
	base := BuildCommentTree([]models.Comment{
		row("A", nil, day(2)),
		row("B", nil, day(1)),
		row("C", ptr("A"), day(3)),
	})

	t.Run("replaces a root in place", func(t *testing.T) {
		updated := row("A", nil, day(2))
		updated.Content = "edited"
		updated.Edited = true
		out := ReplaceNode(base, updated)
		if out[0].Content != "edited" || !out[0].Edited {
			t.Error("root was not replaced")
		}
		if out[0].ReplyCount != 1 || out[0].Replies[0].ID != "C" {
			t.Error("replacement lost the reply list")
		}
		if base[0].Content == "edited" {
			t.Error("snapshot was mutated")
		}
	})

	t.Run("replaces a nested reply in place", func(t *testing.T) {
		updated := row("C", ptr("A"), day(3))
		updated.Content = "edited reply"
		out := ReplaceNode(base, updated)
		if out[0].Replies[0].Content != "edited reply" {
			t.Error("reply was not replaced")
		}
		if base[0].Replies[0].Content == "edited reply" {
			t.Error("snapshot was mutated")
		}
	})

	t.Run("unknown id leaves forest unchanged", func(t *testing.T) {
		out := ReplaceNode(base, row("Z", nil, day(9)))
		if len(out) != len(base) || out[0] != base[0] {
			t.Error("forest changed for unknown id")
		}
	})
}

func TestRemoveNode(t *testing.T) {
	base := BuildCommentTree([]models.Comment{
		row("A", nil, day(2)),
		row("B", nil, day(1)),
		row("C", ptr("A"), day(3)),
		row("D", ptr("A"), day(4)),
	})

	t.Run("removing a root drops its replies too", func(t *testing.T) {
		out := RemoveNode(base, "A")
		if len(out) != 1 || out[0].ID != "B" {
			t.Fatalf("expected only B to remain, got %d roots", len(out))
		}
		if countNodes(out) != 1 {
			t.Errorf("descendants survived: %d nodes", countNodes(out))
		}
	})

	t.Run("removing a reply decrements the parent count", func(t *testing.T) {
		out := RemoveNode(base, "C")
		a := out[0]
		if a.ReplyCount != 1 || a.Replies[0].ID != "D" {
			t.Fatalf("A reply_count=%d, want 1 with only D", a.ReplyCount)
		}
		if base[0].ReplyCount != 2 {
			t.Error("snapshot was mutated")
		}
	})

	t.Run("unknown id leaves forest unchanged", func(t *testing.T) {
		out := RemoveNode(base, "Z")
		if countNodes(out) != countNodes(base) {
			t.Error("forest changed for unknown id")
		}
	})
}
