package store

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrCurriculumNotFound = errors.New("curriculum not found")
	ErrPageNotFound       = errors.New("page not found")
	ErrVersionNotFound    = errors.New("version not found")
	ErrLikeNotFound       = errors.New("like not found")
	ErrProgressNotFound   = errors.New("progress not found")
	ErrCommentNotFound    = errors.New("comment not found")
)

// NotFound reports whether err is one of the store's not-found errors.
func NotFound(err error) bool {
	for _, e := range []error{
		ErrUserNotFound, ErrCourseNotFound, ErrCurriculumNotFound,
		ErrPageNotFound, ErrVersionNotFound, ErrLikeNotFound,
		ErrProgressNotFound, ErrCommentNotFound,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
