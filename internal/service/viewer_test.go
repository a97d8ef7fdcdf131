package service

import (
	"context"
	"testing"

	"github.com/courseforge/courseforge/internal/store"
	"github.com/courseforge/courseforge/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestViewerService_Like(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	_, _, pages, curID := pageFixture(t, db)
	viewers := NewViewerService(db)

	page, err := pages.CreatePage(context.TODO(), curID, "Hello", nil)
	assert.NoError(t, err)

	session := uuid.New().String()

	status, err := viewers.GetLike(context.TODO(), page.ID, session)
	assert.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 0, status.Count)

	status, err = viewers.Like(context.TODO(), page.ID, session)
	assert.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.Count)

	// liking twice from the same session does not inflate the counter
	status, err = viewers.Like(context.TODO(), page.ID, session)
	assert.NoError(t, err)
	assert.True(t, status.Liked)
	assert.Equal(t, 1, status.Count)

	other := uuid.New().String()
	status, err = viewers.Like(context.TODO(), page.ID, other)
	assert.NoError(t, err)
	assert.Equal(t, 2, status.Count)

	status, err = viewers.Unlike(context.TODO(), page.ID, session)
	assert.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 1, status.Count)

	// unliking a page the session never liked is a no-op
	status, err = viewers.Unlike(context.TODO(), page.ID, session)
	assert.NoError(t, err)
	assert.False(t, status.Liked)
	assert.Equal(t, 1, status.Count)

	_, err = viewers.Like(context.TODO(), uuid.New().String(), session)
	assert.True(t, store.NotFound(err))
}

func TestViewerService_Progress(t *testing.T) {
	tester.Setup()

	db := store.NewGormStore(tester.TestDB())
	courses, curriculums, pages, curID := pageFixture(t, db)
	viewers := NewViewerService(db)

	course, err := courses.ListCourses(context.TODO())
	assert.NoError(t, err)
	courseID := course[0].ID

	// four pages across two curriculums
	p1, err := pages.CreatePage(context.TODO(), curID, "One", nil)
	assert.NoError(t, err)
	p2, err := pages.CreatePage(context.TODO(), curID, "Two", nil)
	assert.NoError(t, err)

	second, err := curriculums.CreateCurriculum(context.TODO(), courseID, "Advanced")
	assert.NoError(t, err)
	_, err = pages.CreatePage(context.TODO(), second.ID, "Three", nil)
	assert.NoError(t, err)
	_, err = pages.CreatePage(context.TODO(), second.ID, "Four", nil)
	assert.NoError(t, err)

	session := uuid.New().String()

	progress, err := viewers.GetProgress(context.TODO(), courseID, session)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, progress.Progress)
	assert.Equal(t, 4, progress.TotalPages)
	assert.Empty(t, progress.CompletedPages)
	assert.Nil(t, progress.LastPageID)

	progress, err = viewers.CompletePage(context.TODO(), courseID, session, p1.ID)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, progress.Progress)
	assert.Equal(t, p1.ID, *progress.LastPageID)

	// completing the same page again keeps the percentage stable
	progress, err = viewers.CompletePage(context.TODO(), courseID, session, p1.ID)
	assert.NoError(t, err)
	assert.Equal(t, 25.0, progress.Progress)
	assert.Len(t, progress.CompletedPages, 1)

	progress, err = viewers.CompletePage(context.TODO(), courseID, session, p2.ID)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, progress.Progress)
	assert.Equal(t, []string{p1.ID, p2.ID}, progress.CompletedPages)
	assert.Equal(t, p2.ID, *progress.LastPageID)

	// progress is per session
	progress, err = viewers.GetProgress(context.TODO(), courseID, uuid.New().String())
	assert.NoError(t, err)
	assert.Equal(t, 0.0, progress.Progress)

	_, err = viewers.GetProgress(context.TODO(), uuid.New().String(), session)
	assert.True(t, store.NotFound(err))
}
