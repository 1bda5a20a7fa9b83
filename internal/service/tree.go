package service

import (
	"sort"

	"github.com/stackmoneyup/backend/internal/models"
)

// BuildCommentTree converts a flat, unordered set of comment rows belonging
// to one post into a two-level display tree: root comments ordered newest
// first, each carrying its replies ordered oldest first.
//
// The input is expected to be pre-filtered to approved rows. A child whose
// parent is absent from the set (deleted, or filtered out as unapproved) is
// dropped from the result; the row itself stays in storage. The function
// never fails: empty input yields an empty forest.
func BuildCommentTree(rows []models.Comment) []*models.Comment {
	byID := make(map[string]*models.Comment, len(rows))
	all := make([]*models.Comment, 0, len(rows))
	roots := make([]*models.Comment, 0, len(rows))

	for i := range rows {
		c := rows[i] // copy, keep the caller's slice untouched
		c.Replies = []*models.Comment{}
		c.ReplyCount = 0
		byID[c.ID] = &c
		all = append(all, &c)
		if c.ParentID == nil {
			roots = append(roots, &c)
		}
	}

	// Attach children in input order so assembly is deterministic.
	for _, c := range all {
		if c.ParentID == nil {
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			continue // orphan: parent deleted or unapproved
		}
		parent.Replies = append(parent.Replies, c)
		parent.ReplyCount++
	}

	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	for _, root := range roots {
		replies := root.Replies
		sort.SliceStable(replies, func(i, j int) bool {
			return replies[i].CreatedAt.Before(replies[j].CreatedAt)
		})
	}

	return roots
}

// The transforms below let a caller keep a rendered tree in sync with a
// confirmed remote mutation without re-fetching. Each treats the input as an
// immutable snapshot and returns a new forest; nodes on the untouched paths
// are shared, nodes on the modified path are copied.

// InsertNode splices a newly created comment into the forest in the position
// a re-fetch would produce: roots are prepended (newest first), replies are
// appended to their parent (oldest first) with the parent's reply count
// bumped. A reply whose parent is not in the forest leaves it unchanged.
func InsertNode(roots []*models.Comment, c models.Comment) []*models.Comment {
	c.Replies = []*models.Comment{}
	c.ReplyCount = 0

	if c.ParentID == nil {
		out := make([]*models.Comment, 0, len(roots)+1)
		out = append(out, &c)
		return append(out, roots...)
	}

	out := make([]*models.Comment, len(roots))
	copy(out, roots)
	for i, root := range out {
		if root.ID != *c.ParentID {
			continue
		}
		clone := *root
		clone.Replies = make([]*models.Comment, 0, len(root.Replies)+1)
		clone.Replies = append(clone.Replies, root.Replies...)
		clone.Replies = append(clone.Replies, &c)
		clone.ReplyCount = len(clone.Replies)
		out[i] = &clone
		return out
	}
	return roots
}

// ReplaceNode swaps the node with the given id for the updated comment,
// wherever it sits in the forest, preserving position and the existing reply
// list. The forest is returned unchanged if the id is not present.
func ReplaceNode(roots []*models.Comment, updated models.Comment) []*models.Comment {
	for i, root := range roots {
		if root.ID == updated.ID {
			clone := updated
			clone.Replies = root.Replies
			clone.ReplyCount = root.ReplyCount
			out := make([]*models.Comment, len(roots))
			copy(out, roots)
			out[i] = &clone
			return out
		}
		for j, reply := range root.Replies {
			if reply.ID != updated.ID {
				continue
			}
			clone := updated
			clone.Replies = []*models.Comment{}
			clone.ReplyCount = 0
			rootClone := *root
			rootClone.Replies = make([]*models.Comment, len(root.Replies))
			copy(rootClone.Replies, root.Replies)
			rootClone.Replies[j] = &clone
			out := make([]*models.Comment, len(roots))
			copy(out, roots)
			out[i] = &rootClone
			return out
		}
	}
	return roots
}

// RemoveNode deletes the node with the given id from the forest. Removing a
// root removes its nested replies with it; removing a reply decrements the
// parent's reply count.
func RemoveNode(roots []*models.Comment, id string) []*models.Comment {
	for i, root := range roots {
		if root.ID == id {
			out := make([]*models.Comment, 0, len(roots)-1)
			out = append(out, roots[:i]...)
			return append(out, roots[i+1:]...)
		}
		for j, reply := range root.Replies {
			if reply.ID != id {
				continue
			}
			rootClone := *root
			rootClone.Replies = make([]*models.Comment, 0, len(root.Replies)-1)
			rootClone.Replies = append(rootClone.Replies, root.Replies[:j]...)
			rootClone.Replies = append(rootClone.Replies, root.Replies[j+1:]...)
			rootClone.ReplyCount = len(rootClone.Replies)
			out := make([]*models.Comment, len(roots))
			copy(out, roots)
			out[i] = &rootClone
			return out
		}
	}
	return roots
}
