// Package store implements the in-memory relational store backing the
// application: users, posts, comments and likes live in process-local
// collections, with referential integrity (cascading deletes, denormalized
// counters, ownership checks) enforced by hand rather than by a database
// engine.
package store

import (
	"sync"
	"time"

	"plaza/internal/models"
)

// DB is the shared table set. All tables are guarded by a single
// reader-writer lock: mutations (including like toggles and cascades) run
// under the write lock as one critical section, so readers never observe a
// half-deleted entity graph or a like row out of sync with its counter.
//
// Rows are kept in slices in creation order, which is also the pagination
// order. ID counters are strictly increasing and never reused after deletes.
type DB struct {
	mu sync.RWMutex

	users    []*models.User
	posts    []*models.Post
	comments []*models.Comment
	likes    []models.Like

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint

	now func() time.Time
}

// New returns an empty DB.
func New() *DB {
	return &DB{
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		now:           time.Now,
	}
}

// lookup helpers; callers must hold db.mu (read or write).

func (db *DB) userByIDLocked(id uint) *models.User {
	for _, u := range db.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (db *DB) postByIDLocked(id uint) *models.Post {
	for _, p := range db.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (db *DB) likeIndexLocked(userID, postID uint) int {
	for i, l := range db.likes {
		if l.UserID == userID && l.PostID == postID {
			return i
		}
	}
	return -1
}

func (db *DB) likeCountLocked(postID uint) int {
	n := 0
	for _, l := range db.likes {
		if l.PostID == postID {
			n++
		}
	}
	return n
}

func (db *DB) commentCountLocked(postID uint) int {
	n := 0
	for _, c := range db.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (db *DB) profileImageByNicknameLocked(nickname string) string {
	for _, u := range db.users {
		if u.Nickname == nickname {
			return u.ProfileImage
		}
	}
	return ""
}

// decLikeCountLocked decrements a post's like counter, floored at zero. Both
// the direct toggle path and the user-deletion cascade go through this so the
// counter is never observably negative.
func decLikeCountLocked(p *models.Post) {
	if p.LikeCount > 0 {
		p.LikeCount--
	}
}
