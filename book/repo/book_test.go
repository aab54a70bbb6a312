package repo

import (
	"context"
	"testing"

	"github.com/YOHANNES7766/AmenApp/book/repo/model"
	"github.com/YOHANNES7766/AmenApp/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBookTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(&model.Book{}, &model.BookComment{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestBookApprovalListing(t *testing.T) {
	repo := NewBookRepo(setupBookTestDB(t))
	ctx := context.Background()

	pending := &model.Book{Title: "Fikir Eske Mekabir", Author: "Haddis Alemayehu", UploaderID: 1}
	require.NoError(t, repo.Create(ctx, pending))

	// Fresh uploads are hidden until approved.
	books, err := repo.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)

	require.NoError(t, repo.SetApproved(ctx, pending.ID, true))

	books, err = repo.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Fikir Eske Mekabir", books[0].Title)

	err = repo.SetApproved(ctx, 999, true)
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestBookComments(t *testing.T) {
	repo := NewBookRepo(setupBookTestDB(t))
	ctx := context.Background()

	book := &model.Book{Title: "Oromay", UploaderID: 1}
	require.NoError(t, repo.Create(ctx, book))

	first := &model.BookComment{BookID: book.ID, UserID: 2, Body: "great read"}
	require.NoError(t, repo.CreateComment(ctx, first))
	second := &model.BookComment{BookID: book.ID, UserID: 3, Body: "agreed"}
	require.NoError(t, repo.CreateComment(ctx, second))

	comments, err := repo.ListComments(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "great read", comments[0].Body)
	assert.Equal(t, "agreed", comments[1].Body)

	// Comments on a missing book are rejected.
	ghost := &model.BookComment{BookID: 999, UserID: 2, Body: "hello?"}
	err = repo.CreateComment(ctx, ghost)
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}
