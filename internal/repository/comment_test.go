package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByPostOldestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewCommentRepository(db)
	author := seedUser(t, db, "author")
	post := seedPost(t, db, author.ID, "hello")

	first := seedComment(t, db, author.ID, post.ID, "first")
	seedComment(t, db, author.ID, post.ID, "second")
	require.NoError(t, db.Exec(
		"UPDATE comments SET created_at = datetime('now', '-1 hour') WHERE id = ?", first.ID,
	).Error)

	comments, err := repo.ListByPost(testCtx(), post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "second", comments[1].Text)
	assert.Equal(t, "author", comments[0].User.Username)
}
