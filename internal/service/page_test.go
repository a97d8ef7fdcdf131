package service

import (
	"context"
	"testing"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pageFixture(t *testing.T, db store.Store) (*CourseService, *CurriculumService, *PageService, string) {
	t.Helper()

	courseCache := cache.NewCourseCache(nil)
	courses := NewCourseService(db, courseCache)
	curriculums := NewCurriculumService(db, courseCache)
	codec, err := NewCodec("gzip")
	assert.NoError(t, err)
	pages := NewPageService(db, courseCache, codec)

	course, err := courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)
	cur, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)

	return courses, curriculums, pages, cur.ID
}

func TestPageService_CreatePage(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)

	first, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 0, first.Order)

	second, err := pages.CreatePage(context.TODO(), curID, "World", nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	_, err = pages.CreatePage(context.TODO(), curID, "  ", nil)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = pages.CreatePage(context.TODO(), curID, "Bad", []byte(`[{"type":"marquee"}]`))
	assert.ErrorIs(t, err, ErrInvalidContent)

	_, err = pages.CreatePage(context.TODO(), uuid.New().String(), "Orphan", nil)
	assert.True(t, store.NotFound(err))
}

func TestPageService_UpdatePage_SaveVersion(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	codec, err := NewCodec("gzip")
	assert.NoError(t, err)
	versions := NewVersionService(db, codec)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("first draft"))
	assert.NoError(t, err)

	// plain update, no snapshot
	title := "Hello Again"
	_, err = pages.UpdatePage(context.TODO(), page.ID, UpdatePageRequest{Title: &title})
	assert.NoError(t, err)

	history, err := versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 0)

	// content update with SaveVersion archives the content being replaced
	updated, err := pages.UpdatePage(context.TODO(), page.ID, UpdatePageRequest{
		Content:     pageContent("second draft"),
		SaveVersion: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Hello Again", updated.Title)
	assert.JSONEq(t, string(pageContent("second draft")), string(updated.Content))

	history, err = versions.ListVersions(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, 1, history[0].Number)
	assert.Equal(t, "first draft", history[0].Preview)

	_, err = pages.UpdatePage(context.TODO(), page.ID, UpdatePageRequest{Content: []byte(`not json`)})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestPageService_Reorder(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, curriculums, pages, curID := pageFixture(t, db)

	a, err := pages.CreatePage(context.TODO(), curID, "A", nil)
	assert.NoError(t, err)
	b, err := pages.CreatePage(context.TODO(), curID, "B", nil)
	assert.NoError(t, err)

	err = pages.Reorder(context.TODO(), curID, []string{b.ID, a.ID})
	assert.NoError(t, err)

	cur, err := curriculums.GetCurriculum(context.TODO(), curID)
	assert.NoError(t, err)
	assert.Equal(t, b.ID, cur.Pages[0].ID)
	assert.Equal(t, a.ID, cur.Pages[1].ID)

	err = pages.Reorder(context.TODO(), curID, []string{a.ID})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	err = pages.Reorder(context.TODO(), curID, []string{a.ID, uuid.New().String()})
	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestPageService_Move(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courses, curriculums, pages, curID := pageFixture(t, db)

	course, err := courses.ListCourses(context.TODO())
	assert.NoError(t, err)
	dest, err := curriculums.CreateCurriculum(context.TODO(), course[0].ID, "Advanced")
	assert.NoError(t, err)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", nil)
	assert.NoError(t, err)

	// destination is empty, so the page lands at order zero
	moved, err := pages.Move(context.TODO(), page.ID, dest.ID)
	assert.NoError(t, err)
	assert.Equal(t, dest.ID, moved.CurriculumID)
	assert.Equal(t, 0, moved.Order)

	other, err := pages.CreatePage(context.TODO(), curID, "World", nil)
	assert.NoError(t, err)
	moved, err = pages.Move(context.TODO(), other.ID, dest.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, moved.Order)

	_, err = pages.Move(context.TODO(), page.ID, uuid.New().String())
	assert.True(t, store.NotFound(err))
}

func TestPageService_Duplicate(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courses, _, pages, curID := pageFixture(t, db)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", pageContent("hello"))
	assert.NoError(t, err)

	course, err := courses.ListCourses(context.TODO())
	assert.NoError(t, err)
	_, err = courses.Publish(context.TODO(), course[0].ID)
	assert.NoError(t, err)

	dup, err := pages.Duplicate(context.TODO(), page.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Hello (copy)", dup.Title)
	assert.Equal(t, curID, dup.CurriculumID)
	assert.Equal(t, 1, dup.Order)
	assert.False(t, dup.IsPublished)
	assert.JSONEq(t, string(pageContent("hello")), string(dup.Content))
}
