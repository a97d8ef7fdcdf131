package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/courseforge/courseforge/internal/cache"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/stretchr/testify/assert"
)

// pageContent builds a one-paragraph block document for fixtures.
func pageContent(text string) []byte {
	data, err := json.Marshal([]map[string]any{
		{
			"id":      "block-1",
			"type":    "paragraph",
			"content": []map[string]any{{"type": "text", "text": text, "styles": map[string]any{}}},
		},
	})
	if err != nil {
		panic(err)
	}
	return data
}

func TestCourseService_CreateCourse(t *testing.T) {
	tester.Setup()

	courses := NewCourseService(store.NewGormStore(tester.TestDB()), cache.NewCourseCache(nil))

	description := "  about the course  "
	course, err := courses.CreateCourse(context.TODO(), "  Go Basics  ", &description)
	assert.NoError(t, err)
	assert.Equal(t, "Go Basics", course.Title)
	assert.Equal(t, "about the course", *course.Description)
	assert.False(t, course.IsPublished)

	_, err = courses.CreateCourse(context.TODO(), "   ", nil)
	assert.ErrorIs(t, err, ErrTitleRequired)

	empty := "   "
	course, err = courses.CreateCourse(context.TODO(), "Untitled", &empty)
	assert.NoError(t, err)
	assert.Nil(t, course.Description)
}

func TestCourseService_UpdateCourse(t *testing.T) {
	tester.Setup()

	courses := NewCourseService(store.NewGormStore(tester.TestDB()), cache.NewCourseCache(nil))

	course, err := courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)

	updated, err := courses.UpdateCourse(context.TODO(), course.ID, "Go Fundamentals", nil)
	assert.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", updated.Title)

	_, err = courses.UpdateCourse(context.TODO(), course.ID, "", nil)
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = courses.UpdateCourse(context.TODO(), "missing", "Title", nil)
	assert.True(t, store.NotFound(err))
}

func TestCourseService_Publish(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
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

	page1, err := pages.CreatePage(context.TODO(), cur.ID, "Hello", pageContent("hello"))
	assert.NoError(t, err)
	page2, err := pages.CreatePage(context.TODO(), cur.ID, "World", pageContent("world"))
	assert.NoError(t, err)

	_, err = courses.GetPublishedCourse(context.TODO(), course.ID)
	assert.ErrorIs(t, err, ErrCourseNotPublished)

	publishedAt, err := courses.Publish(context.TODO(), course.ID)
	assert.NoError(t, err)
	assert.NotNil(t, publishedAt)

	got, err := courses.GetCourse(context.TODO(), course.ID)
	assert.NoError(t, err)
	assert.True(t, got.IsPublished)
	for _, page := range got.Curriculums[0].Pages {
		assert.True(t, page.IsPublished)
		assert.JSONEq(t, string(page.Content), string(page.PublishedContent))
	}

	// a draft edit after publish must not leak into the published view
	content := pageContent("hello, revised")
	_, err = pages.UpdatePage(context.TODO(), page1.ID, UpdatePageRequest{Content: content})
	assert.NoError(t, err)

	// a page created after publish has no snapshot yet and serves its draft
	page3, err := pages.CreatePage(context.TODO(), cur.ID, "Draft Only", pageContent("draft"))
	assert.NoError(t, err)

	published, err := courses.GetPublishedCourse(context.TODO(), course.ID)
	assert.NoError(t, err)
	assert.Len(t, published.Curriculums[0].Pages, 3)
	assert.JSONEq(t, string(pageContent("hello")), string(published.Curriculums[0].Pages[0].Content))
	assert.Equal(t, page2.ID, published.Curriculums[0].Pages[1].ID)
	assert.Equal(t, page3.ID, published.Curriculums[0].Pages[2].ID)
	assert.JSONEq(t, string(pageContent("draft")), string(published.Curriculums[0].Pages[2].Content))
}

func TestCourseService_ListPublishedCourses(t *testing.T) {
	tester.Setup()

	courses := NewCourseService(store.NewGormStore(tester.TestDB()), cache.NewCourseCache(nil))

	published, err := courses.CreateCourse(context.TODO(), "Published", nil)
	assert.NoError(t, err)
	_, err = courses.CreateCourse(context.TODO(), "Draft", nil)
	assert.NoError(t, err)

	_, err = courses.Publish(context.TODO(), published.ID)
	assert.NoError(t, err)

	all, err := courses.ListCourses(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	visible, err := courses.ListPublishedCourses(context.TODO())
	assert.NoError(t, err)
	assert.Len(t, visible, 1)
	assert.Equal(t, published.ID, visible[0].ID)
}

func TestCourseService_DeleteCourse(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courseCache := cache.NewCourseCache(nil)
	courses := NewCourseService(db, courseCache)
	curriculums := NewCurriculumService(db, courseCache)

	course, err := courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)
	cur, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)

	assert.NoError(t, courses.DeleteCourse(context.TODO(), course.ID))

	_, err = courses.GetCourse(context.TODO(), course.ID)
	assert.True(t, store.NotFound(err))
	_, err = curriculums.GetCurriculum(context.TODO(), cur.ID)
	assert.True(t, store.NotFound(err))

	err = courses.DeleteCourse(context.TODO(), course.ID)
	assert.True(t, store.NotFound(err))
}
