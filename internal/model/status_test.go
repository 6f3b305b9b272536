package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPostStatusValid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusScheduled.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.True(t, StatusFailed.Valid())

	assert.False(t, PostStatus("").Valid())
	assert.False(t, PostStatus("draft").Valid())
	assert.False(t, PostStatus("ARCHIVED").Valid())
}

func TestPostStatusTransitions(t *testing.T) {
	cases := []struct {
		from    PostStatus
		to      PostStatus
		allowed bool
	}{
		{StatusDraft, StatusScheduled, true},
		{StatusDraft, StatusPublished, false},
		{StatusDraft, StatusFailed, false},
		{StatusScheduled, StatusDraft, true},
		{StatusScheduled, StatusPublished, true},
		{StatusScheduled, StatusFailed, true},
		{StatusPublished, StatusDraft, false},
		{StatusPublished, StatusScheduled, false},
		{StatusPublished, StatusFailed, false},
		{StatusFailed, StatusDraft, true},
		{StatusFailed, StatusScheduled, false},
		{StatusFailed, StatusPublished, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestPostDue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	duePost := &Post{Status: StatusScheduled, ScheduledFor: &past}
	assert.True(t, duePost.Due(now))

	exact := &Post{Status: StatusScheduled, ScheduledFor: &now}
	assert.True(t, exact.Due(now))

	futurePost := &Post{Status: StatusScheduled, ScheduledFor: &future}
	assert.False(t, futurePost.Due(now))

	draft := &Post{Status: StatusDraft, ScheduledFor: &past}
	assert.False(t, draft.Due(now))

	noTime := &Post{Status: StatusScheduled}
	assert.False(t, noTime.Due(now))
}

func TestPostTrackRoundTrip(t *testing.T) {
	post := &Post{}
	err := post.SetTracks([]Track{
		{Title: "Opener", DurationSeconds: 201, Position: 1},
		{Title: "Closer", DurationSeconds: 260, Position: 2},
	})
	assert.NoError(t, err)

	tracks, err := post.Tracks()
	assert.NoError(t, err)
	assert.Len(t, tracks, 2)
	assert.Equal(t, "Opener", tracks[0].Title)
	assert.Equal(t, 2, tracks[1].Position)

	empty := &Post{}
	tracks, err = empty.Tracks()
	assert.NoError(t, err)
	assert.Nil(t, tracks)
}
