package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/courseforge/courseforge/internal/model"
	"github.com/courseforge/courseforge/internal/store"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NewViewerService creates a new ViewerService.
func NewViewerService(store store.Store) *ViewerService {
	return &ViewerService{
		store: store,
	}
}

// ViewerService tracks likes and reading progress for anonymous viewers.
// The sessionID is the viewer_session cookie value.
type ViewerService struct {
	store store.Store
}

// LikeStatus is the viewer-facing like state of a page.
type LikeStatus struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

// GetLike reports whether the session liked the page and the page's total.
func (v *ViewerService) GetLike(ctx context.Context, pageID, sessionID string) (*LikeStatus, error) {
	page, err := v.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	liked := true
	if _, err := v.store.GetPageLike(ctx, pageID, sessionID); err != nil {
		if !errors.Is(err, store.ErrLikeNotFound) {
			return nil, err
		}
		liked = false
	}

	return &LikeStatus{Liked: liked, Count: page.LikeCount}, nil
}

// Like records a like. A second like from the same session is a no-op
// that reports the current count; the like row and the counter change in
// one transaction.
func (v *ViewerService) Like(ctx context.Context, pageID, sessionID string) (*LikeStatus, error) {
	page, err := v.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if _, err := v.store.GetPageLike(ctx, pageID, sessionID); err == nil {
		return &LikeStatus{Liked: true, Count: page.LikeCount}, nil
	} else if !errors.Is(err, store.ErrLikeNotFound) {
		return nil, err
	}

	var count int
	err = v.store.Transaction(ctx, func(tx store.Store) error {
		like := &model.PageLike{
			ID:     uuid.New().String(),
			PageID: pageID,
			UserID: sessionID,
		}
		if err := tx.CreatePageLike(ctx, like); err != nil {
			return err
		}
		count, err = tx.AddLikeCount(ctx, pageID, 1)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: true, Count: count}, nil
}

// Unlike removes a like. Unliking a page the session never liked is a
// no-op; the counter never drops below zero.
func (v *ViewerService) Unlike(ctx context.Context, pageID, sessionID string) (*LikeStatus, error) {
	page, err := v.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if _, err := v.store.GetPageLike(ctx, pageID, sessionID); err != nil {
		if !errors.Is(err, store.ErrLikeNotFound) {
			return nil, err
		}
		return &LikeStatus{Liked: false, Count: page.LikeCount}, nil
	}

	var count int
	err = v.store.Transaction(ctx, func(tx store.Store) error {
		if err := tx.DeletePageLike(ctx, pageID, sessionID); err != nil {
			return err
		}
		count, err = tx.AddLikeCount(ctx, pageID, -1)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &LikeStatus{Liked: false, Count: count}, nil
}

// Progress is the viewer-facing completion state of a course.
type Progress struct {
	CompletedPages []string `json:"completedPages"`
	LastPageID     *string  `json:"lastPageId"`
	Progress       float64  `json:"progress"`
	TotalPages     int      `json:"totalPages"`
}

// GetProgress returns the session's progress in a course, zeroed when the
// session has not read anything yet.
func (v *ViewerService) GetProgress(ctx context.Context, courseID, sessionID string) (*Progress, error) {
	if _, err := v.store.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	total, err := v.store.CountPages(ctx, courseID)
	if err != nil {
		return nil, err
	}

	row, err := v.store.GetProgress(ctx, sessionID, courseID)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			return nil, err
		}
		return &Progress{CompletedPages: []string{}, TotalPages: int(total)}, nil
	}

	completed, err := decodeCompleted(row.CompletedPages)
	if err != nil {
		return nil, err
	}

	return &Progress{
		CompletedPages: completed,
		LastPageID:     row.LastPageID,
		Progress:       row.Progress,
		TotalPages:     int(total),
	}, nil
}

// CompletePage marks a page as read and recomputes the percentage over
// the course's current page count. Completing the same page twice does
// not inflate the percentage.
func (v *ViewerService) CompletePage(ctx context.Context, courseID, sessionID, pageID string) (*Progress, error) {
	if _, err := v.store.GetCourse(ctx, courseID); err != nil {
		return nil, err
	}

	total, err := v.store.CountPages(ctx, courseID)
	if err != nil {
		return nil, err
	}

	var completed []string
	row, err := v.store.GetProgress(ctx, sessionID, courseID)
	if err != nil {
		if !errors.Is(err, store.ErrProgressNotFound) {
			return nil, err
		}
	} else {
		if completed, err = decodeCompleted(row.CompletedPages); err != nil {
			return nil, err
		}
	}

	if !contains(completed, pageID) {
		completed = append(completed, pageID)
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(len(completed)) / float64(total) * 100
	}

	data, err := json.Marshal(completed)
	if err != nil {
		return nil, err
	}

	progress := &model.UserProgress{
		UserID:         sessionID,
		CourseID:       courseID,
		CompletedPages: datatypes.JSON(data),
		LastPageID:     &pageID,
		Progress:       percentage,
	}
	if err := v.store.UpsertProgress(ctx, progress); err != nil {
		return nil, err
	}

	return &Progress{
		CompletedPages: completed,
		LastPageID:     &pageID,
		Progress:       percentage,
		TotalPages:     int(total),
	}, nil
}

func decodeCompleted(data datatypes.JSON) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var completed []string
	if err := json.Unmarshal(data, &completed); err != nil {
		return nil, err
	}
	return completed, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
