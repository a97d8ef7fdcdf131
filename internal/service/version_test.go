package service

import (
	"context"
	"strings"
	"testing"

	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestVersionService_ListVersions(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	codec, err := NewCodec("gzip")
	assert.NoError(t, err)
	versions := NewVersionService(db, codec)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("draft one"))
	assert.NoError(t, err)

	for _, text := range []string{"draft two", "draft three"} {
		_, err = pages.UpdatePage(context.TODO(), page.ID, UpdatePageRequest{
			Content:     pageContent(text),
			SaveVersion: true,
		})
		assert.NoError(t, err)
	}

	history, err := versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 2)

	// newest first, but the oldest snapshot keeps version number one
	assert.Equal(t, 2, history[0].Number)
	assert.Equal(t, "draft two", history[0].Preview)
	assert.Equal(t, 1, history[1].Number)
	assert.Equal(t, "draft one", history[1].Preview)

	content, err := versions.GetVersionContent(context.TODO(), page.ID, history[1].ID)
	assert.NoError(t, err)
	assert.JSONEq(t, string(pageContent("draft one")), string(content))

	_, err = versions.ListVersions(context.TODO(), uuid.New().String())
	assert.True(t, store.NotFound(err))
}

func TestVersionService_Preview(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	codec, err := NewCodec("brotli")
	assert.NoError(t, err)
	versions := NewVersionService(db, codec)

	long := strings.Repeat("a", 150)
	page, err := pages.CreatePage(context.TODO(), curID, "Long", pageContent(long))
	assert.NoError(t, err)

	_, err = versions.SaveVersion(context.TODO(), page.ID)
	assert.NoError(t, err)

	history, err := versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, strings.Repeat("a", 100)+"...", history[0].Preview)
}

func TestVersionService_Restore(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	codec, err := NewCodec("lz4")
	assert.NoError(t, err)
	versions := NewVersionService(db, codec)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("original"))
	assert.NoError(t, err)

	_, err = pages.UpdatePage(context.TODO(), page.ID, UpdatePageRequest{
		Content:     pageContent("revised"),
		SaveVersion: true,
	})
	assert.NoError(t, err)

	history, err := versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)

	restored, err := versions.Restore(context.TODO(), page.ID, history[0].ID)
	assert.NoError(t, err)
	assert.JSONEq(t, string(pageContent("original")), string(restored.Content))

	// the replaced content was archived, so the restore itself is undoable
	history, err = versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 2)
	assert.Equal(t, "revised", history[0].Preview)

	_, err = versions.Restore(context.TODO(), page.ID, uuid.New().String())
	assert.True(t, store.NotFound(err))
}

func TestVersionService_DeleteVersion(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	codec, err := NewCodec("")
	assert.NoError(t, err)
	versions := NewVersionService(db, codec)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("draft"))
	assert.NoError(t, err)

	saved, err := versions.SaveVersion(context.TODO(), page.ID)
	assert.NoError(t, err)

	assert.NoError(t, versions.DeleteVersion(context.TODO(), page.ID, saved.ID))

	history, err := versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 0)

	err = versions.DeleteVersion(context.TODO(), page.ID, saved.ID)
	assert.True(t, store.NotFound(err))
}
