package store

import (
	"plaza/internal/models"
	"plaza/internal/observability"
)

// Cascade coordination. These run with db.mu held for writing and remove
// every dependent row before the parent, so no reader can observe a deleted
// parent with surviving children.

// deletePostCascadeLocked removes every comment and like referencing the
// post, then the post row. Like counters need no adjustment: the counted post
// is the one being removed.
func (db *DB) deletePostCascadeLocked(postID uint) {
	removedComments := 0
	for i := len(db.comments) - 1; i >= 0; i-- {
		if db.comments[i].PostID == postID {
			db.comments = append(db.comments[:i], db.comments[i+1:]...)
			removedComments++
		}
	}

	removedLikes := 0
	for i := len(db.likes) - 1; i >= 0; i-- {
		if db.likes[i].PostID == postID {
			db.likes = append(db.likes[:i], db.likes[i+1:]...)
			removedLikes++
		}
	}

	for i := len(db.posts) - 1; i >= 0; i-- {
		if db.posts[i].ID == postID {
			db.posts = append(db.posts[:i], db.posts[i+1:]...)
			break
		}
	}

	observability.CascadeRowsRemoved.WithLabelValues("comments").Add(float64(removedComments))
	observability.CascadeRowsRemoved.WithLabelValues("likes").Add(float64(removedLikes))
	observability.CascadeRowsRemoved.WithLabelValues("posts").Inc()
}

// deleteUserCascadeLocked removes everything the user owns. Owned posts are
// cascaded first; only then are the user's comments and likes on the
// surviving posts cleaned up, which avoids double-processing rows that
// belonged to the already-removed posts. Ownership of posts is keyed on the
// writer nickname, matching the post mutation checks.
func (db *DB) deleteUserCascadeLocked(user *models.User) {
	for i := len(db.posts) - 1; i >= 0; i-- {
		if db.posts[i].Writer == user.Nickname {
			db.deletePostCascadeLocked(db.posts[i].ID)
		}
	}

	for i := len(db.comments) - 1; i >= 0; i-- {
		if db.comments[i].UserID == user.ID {
			db.comments = append(db.comments[:i], db.comments[i+1:]...)
			observability.CascadeRowsRemoved.WithLabelValues("comments").Inc()
		}
	}

	for i := len(db.likes) - 1; i >= 0; i-- {
		if db.likes[i].UserID != user.ID {
			continue
		}
		if p := db.postByIDLocked(db.likes[i].PostID); p != nil {
			decLikeCountLocked(p)
		}
		db.likes = append(db.likes[:i], db.likes[i+1:]...)
		observability.CascadeRowsRemoved.WithLabelValues("likes").Inc()
	}

	for i := len(db.users) - 1; i >= 0; i-- {
		if db.users[i].ID == user.ID {
			db.users = append(db.users[:i], db.users[i+1:]...)
			break
		}
	}
}
