package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/infrastructure/persistence"
	"github.com/pagepulse/pagepulse/internal/testdb"
)

func TestPostStore_PublishedSince(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewPostStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	posts := []rag.Post{
		rag.NewPost("post-old", "Cũ", "bài viết cũ", 1, 0, 0, now.Add(-60*24*time.Hour)),
		rag.NewPost("post-a", "A", "bài viết a", 5, 1, 0, now.Add(-2*24*time.Hour)),
		rag.NewPost("post-b", "B", "bài viết b", 3, 0, 1, now.Add(-24*time.Hour)),
	}
	for _, p := range posts {
		_, err := store.Save(ctx, p)
		require.NoError(t, err)
	}

	got, err := store.PublishedSince(ctx, now.Add(-45*24*time.Hour), 100)
	require.NoError(t, err)

	require.Len(t, got, 2, "posts outside the lookback window are excluded")
	assert.Equal(t, "post-b", got[0].ID(), "newest first")
	assert.Equal(t, "post-a", got[1].ID())
}

func TestPostStore_PublishedSinceLimit(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewPostStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 5; i++ {
		_, err := store.Save(ctx, rag.NewPost(
			string(rune('a'+i)), "T", "nội dung", 0, 0, 0,
			now.Add(-time.Duration(i)*time.Hour),
		))
		require.NoError(t, err)
	}

	got, err := store.PublishedSince(ctx, now.Add(-24*time.Hour), 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestPostStore_SaveUpsertsByID(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewPostStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := store.Save(ctx, rag.NewPost("post-1", "Tiêu đề", "nội dung", 10, 2, 1, now))
	require.NoError(t, err)

	// A later sync refreshes engagement in place.
	updated, err := store.Save(ctx, rag.NewPost("post-1", "Tiêu đề", "nội dung", 25, 4, 2, now))
	require.NoError(t, err)
	assert.Equal(t, 25, updated.Likes())

	got, err := store.PublishedSince(ctx, now.Add(-time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 25, got[0].Likes())
}

func TestExperimentStore_CompletedOnly(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewExperimentStore(db)
	ctx := context.Background()

	variants := []rag.Variant{
		{Name: "A", Content: "phiên bản a", Engagement: 10},
		{Name: "B", Content: "phiên bản b", Engagement: 40},
	}
	_, err := store.Save(ctx, rag.NewExperiment("Done", "completed", variants))
	require.NoError(t, err)
	_, err = store.Save(ctx, rag.NewExperiment("Running", "running", variants))
	require.NoError(t, err)

	got, err := store.Completed(ctx, 50)
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Done", got[0].Name())

	best, ok := got[0].BestVariant()
	require.True(t, ok)
	assert.Equal(t, "B", best.Name, "variants survive the JSON round trip")
}

func TestConversationStore_RecentChronological(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewConversationStore(db)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	msgs := []string{"câu 1", "câu 2", "câu 3", "câu 4"}
	for i, m := range msgs {
		turn := chat.ReconstructTurn(0, "user-1", chat.RoleUser, m, base.Add(time.Duration(i)*time.Minute))
		_, err := store.Append(ctx, turn)
		require.NoError(t, err)
	}
	// Another user's turns stay out of the history.
	_, err := store.Append(ctx, chat.NewTurn("user-2", chat.RoleUser, "khác"))
	require.NoError(t, err)

	got, err := store.Recent(ctx, "user-1", 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "câu 2", got[0].Content())
	assert.Equal(t, "câu 3", got[1].Content())
	assert.Equal(t, "câu 4", got[2].Content())
}
