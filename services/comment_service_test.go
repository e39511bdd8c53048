package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom-api/models"
	"newsroom-api/services"
)

func TestCommentService_CountIncludesDirectReplies(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)
	post := f.published(t, "Talked about")
	other := f.published(t, "Elsewhere")

	first := f.comment(t, reader, post.ID, 0, "first")
	f.comment(t, reader, post.ID, 0, "second")
	f.comment(t, reader, 0, first.ID, "reply one")
	f.comment(t, reader, 0, first.ID, "reply two")
	f.comment(t, reader, other.ID, 0, "not counted")

	// Pending comments count too.
	_, err := f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, Body: "pending"})
	require.NoError(t, err)

	count, err := f.comments.Count(f.ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestCommentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)
	reporter := f.actor(t, models.RoleReporter)
	post := f.published(t, "Open thread")
	draft := f.draft(t, reporter, "Closed thread")
	parent := f.comment(t, reader, post.ID, 0, "parent")

	_, err := f.comments.Create(f.ctx, models.Actor{}, models.CommentInput{PostID: &post.ID, Body: "hi"})
	assert.ErrorIs(t, err, services.ErrUnauthenticated)

	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, RepliedCommentID: &parent.ID, Body: "hi"})
	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "replied_comment")

	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{Body: "hi"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "post")

	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, Body: "<script></script>"})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "comment")

	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &draft.ID, Body: "hi"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	missing := uint(999)
	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{RepliedCommentID: &missing, Body: "hi"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	c, err := f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, Body: "<b>bold</b> claim"})
	require.NoError(t, err)
	assert.Equal(t, "bold claim", c.Body)
	assert.False(t, c.IsApproved)
	assert.Equal(t, reader.ID, c.CommentedBy.ID)
}

func TestCommentService_ThreadShowsApprovedOnly(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)
	post := f.published(t, "Moderated")

	thread, err := f.comments.Thread(f.ctx, reader, post.ID)
	require.NoError(t, err)
	assert.NotNil(t, thread)
	assert.Empty(t, thread)

	top := f.comment(t, reader, post.ID, 0, "approved")
	f.comment(t, reader, 0, top.ID, "approved reply")
	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{RepliedCommentID: &top.ID, Body: "pending reply"})
	require.NoError(t, err)
	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, Body: "pending"})
	require.NoError(t, err)

	thread, err = f.comments.Thread(f.ctx, reader, post.ID)
	require.NoError(t, err)
	require.Len(t, thread, 1)
	assert.Equal(t, "approved", thread[0].Body)
	require.Len(t, thread[0].Replies, 1)
	assert.Equal(t, "approved reply", thread[0].Replies[0].Body)
}

func TestCommentService_DeletePermissions(t *testing.T) {
	f := newFixture(t)
	author := f.actor(t, models.RoleUser)
	stranger := f.actor(t, models.RoleUser)
	editor := f.actor(t, models.RoleEditor)
	post := f.published(t, "Comments")

	mine := f.comment(t, author, post.ID, 0, "mine")
	reply := f.comment(t, stranger, 0, mine.ID, "reply")

	assert.ErrorIs(t, f.comments.Delete(f.ctx, models.Actor{}, mine.ID), services.ErrUnauthenticated)
	assert.ErrorIs(t, f.comments.Delete(f.ctx, stranger, mine.ID), services.ErrForbidden)
	assert.ErrorIs(t, f.comments.Delete(f.ctx, editor, mine.ID), services.ErrForbidden)

	require.NoError(t, f.comments.Delete(f.ctx, author, mine.ID))
	_, err := f.comments.Get(f.ctx, f.admin, reply.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Zero(t, f.db.ReactionSets(models.Subject{Type: models.SubjectComment, ID: reply.ID}))

	other := f.comment(t, stranger, post.ID, 0, "moderated away")
	require.NoError(t, f.comments.Delete(f.ctx, f.admin, other.ID))

	assert.ErrorIs(t, f.comments.Delete(f.ctx, f.admin, other.ID), services.ErrNotFound)
}

func TestCommentService_UpdateAndApprove(t *testing.T) {
	f := newFixture(t)
	author := f.actor(t, models.RoleUser)
	stranger := f.actor(t, models.RoleUser)
	reporter := f.actor(t, models.RoleReporter)
	editor := f.actor(t, models.RoleEditor)
	post := f.published(t, "Edits")

	c, err := f.comments.Create(f.ctx, author, models.CommentInput{PostID: &post.ID, Body: "typo"})
	require.NoError(t, err)

	_, err = f.comments.Update(f.ctx, stranger, c.ID, "hijack")
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := f.comments.Update(f.ctx, author, c.ID, "fixed")
	require.NoError(t, err)
	assert.Equal(t, "fixed", updated.Body)

	_, err = f.comments.Approve(f.ctx, reporter, c.ID, true)
	assert.ErrorIs(t, err, services.ErrForbidden)

	approved, err := f.comments.Approve(f.ctx, editor, c.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	list, total, err := f.comments.List(f.ctx, reporter, models.CommentFilter{PostID: post.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestCommentService_HiddenPostClosesItsThread(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)
	post := f.published(t, "Soon closed")
	parent := f.comment(t, reader, post.ID, 0, "first")
	reply := f.comment(t, reader, 0, parent.ID, "second")

	_, err := f.comments.Create(f.ctx, reader, models.CommentInput{RepliedCommentID: &reply.ID, Body: "deep while open"})
	require.NoError(t, err)

	_, err = f.posts.UpdateFull(f.ctx, f.admin, post.ID, models.PostInput{Status: ptr(models.StatusClosed)})
	require.NoError(t, err)

	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{PostID: &post.ID, Body: "direct"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{RepliedCommentID: &parent.ID, Body: "reply"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = f.comments.Create(f.ctx, reader, models.CommentInput{RepliedCommentID: &reply.ID, Body: "nested reply"})
	assert.ErrorIs(t, err, services.ErrNotFound)

	for _, id := range []uint{parent.ID, reply.ID} {
		subject := models.Subject{Type: models.SubjectComment, ID: id}
		_, err = f.reactions.Toggle(f.ctx, reader, subject, models.Like)
		assert.ErrorIs(t, err, services.ErrNotFound)
		_, err = f.reactions.Toggle(f.ctx, reader, subject, models.Dislike)
		assert.ErrorIs(t, err, services.ErrNotFound)

		_, err = f.reactions.Members(f.ctx, f.admin, subject)
		assert.NoError(t, err)
	}
}

func TestCommentService_DeleteRemovesNestedReplies(t *testing.T) {
	f := newFixture(t)
	reader := f.actor(t, models.RoleUser)
	post := f.published(t, "Long thread")
	top := f.comment(t, reader, post.ID, 0, "top")
	reply := f.comment(t, reader, 0, top.ID, "reply")
	nested := f.comment(t, reader, 0, reply.ID, "nested")
	deeper := f.comment(t, reader, 0, nested.ID, "deeper")

	require.NoError(t, f.comments.Delete(f.ctx, reader, top.ID))
	for _, id := range []uint{reply.ID, nested.ID, deeper.ID} {
		_, err := f.comments.Get(f.ctx, f.admin, id)
		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Zero(t, f.db.ReactionSets(models.Subject{Type: models.SubjectComment, ID: id}))
	}

	other := f.comment(t, reader, post.ID, 0, "other")
	otherReply := f.comment(t, reader, 0, other.ID, "reply")
	otherNested := f.comment(t, reader, 0, otherReply.ID, "nested")

	require.NoError(t, f.posts.Delete(f.ctx, f.admin, post.ID))
	for _, id := range []uint{other.ID, otherReply.ID, otherNested.ID} {
		_, err := f.comments.Get(f.ctx, f.admin, id)
		assert.ErrorIs(t, err, services.ErrNotFound)
		assert.Zero(t, f.db.ReactionSets(models.Subject{Type: models.SubjectComment, ID: id}))
	}
}
