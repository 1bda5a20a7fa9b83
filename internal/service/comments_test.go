package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stackmoneyup/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fakeCommentStore keeps comments in a map and records writes.
type fakeCommentStore struct {
	comments map[string]models.Comment
	creates  int
}

func newFakeCommentStore(rows ...models.Comment) *fakeCommentStore {
	s := &fakeCommentStore{comments: make(map[string]models.Comment)}
	for _, r := range rows {
		s.comments[r.ID] = r
	}
	return s
}

func (s *fakeCommentStore) ListApprovedByPost(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID && c.Approved {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) ListAllByPost(_ context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) GetByID(_ context.Context, id string) (*models.Comment, error) {
	c, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (s *fakeCommentStore) Create(_ context.Context, c *models.Comment) error {
	s.creates++
	if c.ID == "" {
		c.ID = "generated"
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	s.comments[c.ID] = *c
	return nil
}

func (s *fakeCommentStore) Update(_ context.Context, c *models.Comment) error {
	if _, ok := s.comments[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	c.UpdatedAt = time.Now()
	s.comments[c.ID] = *c
	return nil
}

func (s *fakeCommentStore) Delete(_ context.Context, id string) error {
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) SetApproved(_ context.Context, id string, approved bool) error {
	c, ok := s.comments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Approved = approved
	s.comments[id] = c
	return nil
}

func (s *fakeCommentStore) CountApproved(_ context.Context, postID string) (int64, error) {
	var n int64
	for _, c := range s.comments {
		if c.PostID == postID && c.Approved {
			n++
		}
	}
	return n, nil
}

var (
	author = &models.Actor{ID: "u1", Role: models.RoleUser}
	rando  = &models.Actor{ID: "u2", Role: models.RoleUser}
	editor = &models.Actor{ID: "u3", Role: models.RoleEditor}
)

func newTestService(store CommentStore) *CommentService {
	return NewCommentService(store, zap.NewNop())
}

// brokenCommentStore fails every lookup with a non-not-found error.
type brokenCommentStore struct {
	*fakeCommentStore
}

func (s brokenCommentStore) GetByID(context.Context, string) (*models.Comment, error) {
	return nil, errors.New("connection refused")
}

func TestCommentServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated caller is rejected", func(t *testing.T) {
		store := newFakeCommentStore()
		svc := newTestService(store)
		if _, err := svc.Create(ctx, nil, "p1", "hello", nil); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("err = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("whitespace-only content writes nothing", func(t *testing.T) {
		store := newFakeCommentStore()
		svc := newTestService(store)
		if _, err := svc.Create(ctx, author, "p1", "   ", nil); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
		if store.creates != 0 {
			t.Errorf("store writes = %d, want 0", store.creates)
		}
	})

	t.Run("content is trimmed and auto-approved", func(t *testing.T) {
		store := newFakeCommentStore()
		svc := newTestService(store)
		c, err := svc.Create(ctx, author, "p1", "  hello  ", nil)
		if err != nil {
			t.Fatal(err)
		}
		if c.Content != "hello" {
			t.Errorf("content = %q, want %q", c.Content, "hello")
		}
		if !c.Approved {
			t.Error("new comment is not approved")
		}
		if c.AuthorID != author.ID {
			t.Errorf("author = %q, want %q", c.AuthorID, author.ID)
		}
	})

	t.Run("dangling parent fails with not found", func(t *testing.T) {
		store := newFakeCommentStore()
		svc := newTestService(store)
		if _, err := svc.Create(ctx, author, "p1", "hi", ptr("missing")); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("parent on another post is rejected", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if _, err := svc.Create(ctx, author, "p2", "hi", ptr("A")); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("reply to a reply attaches to the thread root", func(t *testing.T) {
		store := newFakeCommentStore(
			row("A", nil, day(1)),
			row("C", ptr("A"), day(2)),
		)
		svc := newTestService(store)
		c, err := svc.Create(ctx, author, "p1", "hi", ptr("C"))
		if err != nil {
			t.Fatal(err)
		}
		if c.ParentID == nil || *c.ParentID != "A" {
			t.Errorf("parent = %v, want A", c.ParentID)
		}
	})
}

func TestCommentServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("non-author gets permission denied and row is untouched", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if _, err := svc.Update(ctx, rando, "A", "hijack"); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
		if store.comments["A"].Content != "content of A" {
			t.Error("stored content changed on denied update")
		}
	})

	t.Run("editor cannot edit a foreign comment", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if _, err := svc.Update(ctx, editor, "A", "hijack"); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("author update trims content and sets edited", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		c, err := svc.Update(ctx, author, "A", " new text ")
		if err != nil {
			t.Fatal(err)
		}
		if c.Content != "new text" || !c.Edited {
			t.Errorf("content=%q edited=%v, want trimmed content and edited=true", c.Content, c.Edited)
		}
		if !c.UpdatedAt.After(c.CreatedAt) {
			t.Errorf("updated_at = %v, want refreshed past %v", c.UpdatedAt, c.CreatedAt)
		}
	})

	t.Run("missing comment fails with not found", func(t *testing.T) {
		svc := newTestService(newFakeCommentStore())
		if _, err := svc.Update(ctx, author, "Z", "text"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("store outage is not reported as not found", func(t *testing.T) {
		svc := newTestService(brokenCommentStore{newFakeCommentStore()})
		_, err := svc.Update(ctx, author, "A", "text")
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("err = %v, want a backend error, not ErrNotFound", err)
		}
	})
}

func TestCommentServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("author may delete", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if err := svc.Delete(ctx, author, "A"); err != nil {
			t.Fatal(err)
		}
		if _, ok := store.comments["A"]; ok {
			t.Error("row still present after delete")
		}
	})

	t.Run("editor may delete a foreign comment", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if err := svc.Delete(ctx, editor, "A"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("other users are denied and the row survives", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if err := svc.Delete(ctx, rando, "A"); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
		if _, ok := store.comments["A"]; !ok {
			t.Error("row deleted despite denial")
		}
	})

	t.Run("deleting a root orphans replies which then drop from the tree", func(t *testing.T) {
		store := newFakeCommentStore(
			row("A", nil, day(1)),
			row("C", ptr("A"), day(2)),
		)
		svc := newTestService(store)
		if err := svc.Delete(ctx, author, "A"); err != nil {
			t.Fatal(err)
		}
		if _, ok := store.comments["C"]; !ok {
			t.Fatal("reply was cascade-deleted; expected it to stay in storage")
		}
		roots, err := svc.Tree(ctx, "p1")
		if err != nil {
			t.Fatal(err)
		}
		if len(roots) != 0 {
			t.Errorf("orphaned reply still renders: %d roots", len(roots))
		}
	})
}

func TestCommentServiceModerate(t *testing.T) {
	ctx := context.Background()

	t.Run("regular user cannot moderate", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if _, err := svc.Moderate(ctx, author, "A", false); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
	})

	t.Run("rejection hides the root and its replies from the public tree", func(t *testing.T) {
		store := newFakeCommentStore(
			row("A", nil, day(1)),
			row("B", nil, day(2)),
			row("C", ptr("A"), day(3)),
		)
		svc := newTestService(store)
		if _, err := svc.Moderate(ctx, editor, "A", false); err != nil {
			t.Fatal(err)
		}
		// C stays approved but loses its parent in the approved set.
		if !store.comments["C"].Approved {
			t.Fatal("rejection cascaded to the reply")
		}
		roots, err := svc.Tree(ctx, "p1")
		if err != nil {
			t.Fatal(err)
		}
		if len(roots) != 1 || roots[0].ID != "B" {
			t.Fatalf("expected only B to render, got %d roots", len(roots))
		}
	})

	t.Run("re-approval restores the subtree", func(t *testing.T) {
		store := newFakeCommentStore(
			row("A", nil, day(1)),
			row("C", ptr("A"), day(3)),
		)
		svc := newTestService(store)
		if _, err := svc.Moderate(ctx, editor, "A", false); err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Moderate(ctx, editor, "A", true); err != nil {
			t.Fatal(err)
		}
		roots, err := svc.Tree(ctx, "p1")
		if err != nil {
			t.Fatal(err)
		}
		if len(roots) != 1 || roots[0].ReplyCount != 1 {
			t.Fatalf("expected A with one reply, got %d roots", len(roots))
		}
	})

	t.Run("moderation queue requires editor role", func(t *testing.T) {
		store := newFakeCommentStore(row("A", nil, day(1)))
		svc := newTestService(store)
		if _, err := svc.ModerationQueue(ctx, author, "p1"); !errors.Is(err, ErrPermissionDenied) {
			t.Fatalf("err = %v, want ErrPermissionDenied", err)
		}
		rows, err := svc.ModerationQueue(ctx, editor, "p1")
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 1 {
			t.Errorf("queue length = %d, want 1", len(rows))
		}
	})
}
