package store

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/model"
)

type Store interface {
	UserStore
	CourseStore
	CurriculumStore
	PageStore
	PageVersionStore
	ViewerStore
	CommentStore
	Transaction(ctx context.Context, f func(tx Store) error) error
	Migrate() error
}

type UserStore interface {
	// CreateUser creates a new user.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id string) (*model.User, error)
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type CourseStore interface {
	// CreateCourse creates a new course.
	CreateCourse(ctx context.Context, course *model.Course) error
	// GetCourse retrieves a course by ID.
	GetCourse(ctx context.Context, id string) (*model.Course, error)
	// GetCourseTree retrieves a course with curriculums and pages ordered.
	GetCourseTree(ctx context.Context, id string) (*model.Course, error)
	// ListCourses retrieves all courses, most recently updated first.
	ListCourses(ctx context.Context) ([]*model.Course, error)
	// CountCurriculums counts the curriculums of a course.
	CountCurriculums(ctx context.Context, courseID string) (int64, error)
	// UpdateCourse updates a course.
	UpdateCourse(ctx context.Context, course *model.Course) error
	// DeleteCourse deletes a course and its children.
	DeleteCourse(ctx context.Context, id string) error
}

type CurriculumStore interface {
	// CreateCurriculum creates a new curriculum.
	CreateCurriculum(ctx context.Context, cur *model.Curriculum) error
	// GetCurriculum retrieves a curriculum by ID.
	GetCurriculum(ctx context.Context, id string) (*model.Curriculum, error)
	// GetCurriculumWithPages retrieves a curriculum with its pages ordered.
	GetCurriculumWithPages(ctx context.Context, id string) (*model.Curriculum, error)
	// ListCurriculums retrieves the curriculums of a course in order.
	ListCurriculums(ctx context.Context, courseID string) ([]*model.Curriculum, error)
	// MaxCurriculumOrder returns the highest order within a course, -1 when empty.
	MaxCurriculumOrder(ctx context.Context, courseID string) (int, error)
	// UpdateCurriculum updates a curriculum.
	UpdateCurriculum(ctx context.Context, cur *model.Curriculum) error
	// SetCurriculumOrder sets the order of a curriculum scoped to its course.
	// Returns ErrCurriculumNotFound when the id does not belong to the course.
	SetCurriculumOrder(ctx context.Context, courseID, id string, order int) error
	// DeleteCurriculum deletes a curriculum and its pages.
	DeleteCurriculum(ctx context.Context, id string) error
}

type PageStore interface {
	// CreatePage creates a new page.
	CreatePage(ctx context.Context, page *model.Page) error
	// GetPage retrieves a page by ID.
	GetPage(ctx context.Context, id string) (*model.Page, error)
	// ListPages retrieves the pages of a curriculum in order.
	ListPages(ctx context.Context, curriculumID string) ([]*model.Page, error)
	// CountPages counts the pages of a whole course.
	CountPages(ctx context.Context, courseID string) (int64, error)
	// MaxPageOrder returns the highest order within a curriculum, -1 when empty.
	MaxPageOrder(ctx context.Context, curriculumID string) (int, error)
	// UpdatePage updates a page.
	UpdatePage(ctx context.Context, page *model.Page) error
	// SetPageOrder sets the order of a page scoped to its curriculum.
	// Returns ErrPageNotFound when the id does not belong to the curriculum.
	SetPageOrder(ctx context.Context, curriculumID, id string, order int) error
	// DeletePage deletes a page and its versions, likes and comments.
	DeletePage(ctx context.Context, id string) error
}

type PageVersionStore interface {
	// CreatePageVersion appends a version snapshot.
	CreatePageVersion(ctx context.Context, version *model.PageVersion) error
	// GetPageVersion retrieves a version scoped to a page.
	GetPageVersion(ctx context.Context, pageID, versionID string) (*model.PageVersion, error)
	// ListPageVersions retrieves the versions of a page, newest first.
	ListPageVersions(ctx context.Context, pageID string) ([]*model.PageVersion, error)
	// ListPageVersionsByCreatedRange retrieves versions created inside a window,
	// ordered by page then creation time. Used by the version cleaner.
	ListPageVersionsByCreatedRange(ctx context.Context, from, to time.Time) ([]*model.PageVersion, error)
	// DeletePageVersion deletes a single version scoped to a page.
	DeletePageVersion(ctx context.Context, pageID, versionID string) error
	// DeletePageVersions deletes version rows by id.
	DeletePageVersions(ctx context.Context, ids []string) error
}

type ViewerStore interface {
	// GetPageLike retrieves a like row for (page, session), ErrLikeNotFound when absent.
	GetPageLike(ctx context.Context, pageID, userID string) (*model.PageLike, error)
	// CreatePageLike inserts a like row.
	CreatePageLike(ctx context.Context, like *model.PageLike) error
	// DeletePageLike removes a like row.
	DeletePageLike(ctx context.Context, pageID, userID string) error
	// AddLikeCount adjusts the denormalized counter and returns the new value.
	AddLikeCount(ctx context.Context, pageID string, delta int) (int, error)
	// GetProgress retrieves progress for (session, course), ErrProgressNotFound when absent.
	GetProgress(ctx context.Context, userID, courseID string) (*model.UserProgress, error)
	// UpsertProgress creates or replaces a progress row.
	UpsertProgress(ctx context.Context, progress *model.UserProgress) error
}

type CommentStore interface {
	// CreateComment creates a comment.
	CreateComment(ctx context.Context, comment *model.Comment) error
	// GetComment retrieves a comment by ID.
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	// ListComments retrieves the top-level comments of a page, newest first,
	// with author and replies (oldest first) preloaded.
	ListComments(ctx context.Context, pageID string) ([]*model.Comment, error)
	// UpdateComment updates a comment.
	UpdateComment(ctx context.Context, comment *model.Comment) error
	// DeleteComment deletes a comment and its replies.
	DeleteComment(ctx context.Context, id string) error
}
