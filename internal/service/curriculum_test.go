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

func TestCurriculumService_CreateCurriculum(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courseCache := cache.NewCourseCache(nil)
	courses := NewCourseService(db, courseCache)
	curriculums := NewCurriculumService(db, courseCache)

	course, err := courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)

	first, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "Getting Started")
	assert.NoError(t, err)
	assert.Equal(t, 0, first.Order)

	second, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "Concurrency")
	assert.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	_, err = curriculums.CreateCurriculum(context.TODO(), course.ID, "  ")
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = curriculums.CreateCurriculum(context.TODO(), uuid.New().String(), "Orphan")
	assert.True(t, store.NotFound(err))
}

func TestCurriculumService_Reorder(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courseCache := cache.NewCourseCache(nil)
	courses := NewCourseService(db, courseCache)
	curriculums := NewCurriculumService(db, courseCache)

	course, err := courses.CreateCourse(context.TODO(), "Go Basics", nil)
	assert.NoError(t, err)

	a, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "A")
	assert.NoError(t, err)
	b, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "B")
	assert.NoError(t, err)
	c, err := curriculums.CreateCurriculum(context.TODO(), course.ID, "C")
	assert.NoError(t, err)

	err = curriculums.Reorder(context.TODO(), course.ID, []string{c.ID, a.ID, b.ID})
	assert.NoError(t, err)

	tree, err := courses.GetCourse(context.TODO(), course.ID)
	assert.NoError(t, err)
	assert.Equal(t, c.ID, tree.Curriculums[0].ID)
	assert.Equal(t, a.ID, tree.Curriculums[1].ID)
	assert.Equal(t, b.ID, tree.Curriculums[2].ID)

	// wrong length
	err = curriculums.Reorder(context.TODO(), course.ID, []string{a.ID, b.ID})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// duplicate id
	err = curriculums.Reorder(context.TODO(), course.ID, []string{a.ID, a.ID, b.ID})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	// unknown id rolls the whole rewrite back
	err = curriculums.Reorder(context.TODO(), course.ID, []string{a.ID, b.ID, uuid.New().String()})
	assert.ErrorIs(t, err, ErrOrderMismatch)

	tree, err = courses.GetCourse(context.TODO(), course.ID)
	assert.NoError(t, err)
	assert.Equal(t, c.ID, tree.Curriculums[0].ID)
	assert.Equal(t, a.ID, tree.Curriculums[1].ID)
	assert.Equal(t, b.ID, tree.Curriculums[2].ID)
}

func TestCurriculumService_Duplicate(t *testing.T) {
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

	_, err = pages.CreatePage(context.TODO(), cur.ID, "Hello", pageContent("hello"))
	assert.NoError(t, err)
	_, err = pages.CreatePage(context.TODO(), cur.ID, "World", pageContent("world"))
	assert.NoError(t, err)

	_, err = courses.Publish(context.TODO(), course.ID)
	assert.NoError(t, err)

	dup, err := curriculums.Duplicate(context.TODO(), cur.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Getting Started (copy)", dup.Title)
	assert.Equal(t, 1, dup.Order)
	assert.Len(t, dup.Pages, 2)

	for i, page := range dup.Pages {
		assert.NotEqual(t, cur.ID, page.CurriculumID)
		assert.Equal(t, i, page.Order)
		// copies start out as drafts even when the source was published
		assert.False(t, page.IsPublished)
		assert.Empty(t, page.PublishedContent)
	}
	assert.JSONEq(t, string(pageContent("hello")), string(dup.Pages[0].Content))
}
