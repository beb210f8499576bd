package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscussion_Upvote_AdditiveOnly(t *testing.T) {
	d := &Discussion{}

	assert.True(t, d.Upvote(1))
	assert.True(t, d.Upvote(2))
	assert.False(t, d.Upvote(1))
	assert.Equal(t, []int64{1, 2}, d.Upvotes)
}

func TestDiscussion_AddComment(t *testing.T) {
	d := &Discussion{}
	now := time.Now()

	c := d.AddComment(5, "first", now)
	require.NotNil(t, c)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, int64(5), c.AuthorID)
	assert.Len(t, d.Comments, 1)

	found := d.FindComment(c.ID)
	require.NotNil(t, found)
	assert.Equal(t, "first", found.Content)
}

func TestDiscussion_RemoveComment(t *testing.T) {
	d := &Discussion{}
	now := time.Now()
	first := d.AddComment(5, "keep", now)
	second := d.AddComment(6, "drop", now)

	assert.True(t, d.RemoveComment(second.ID))
	assert.False(t, d.RemoveComment(second.ID))
	assert.Len(t, d.Comments, 1)
	assert.NotNil(t, d.FindComment(first.ID))
}
