package service

import "errors"

var (
	// ErrTitleRequired is returned when a create or update carries an empty title.
	ErrTitleRequired = errors.New("title is required")
	// ErrContentRequired is returned when a comment carries an empty body.
	ErrContentRequired = errors.New("content is required")
	// ErrOrderMismatch is returned when a reorder list is not a permutation of the current siblings.
	ErrOrderMismatch = errors.New("ordered ids do not match existing items")
	// ErrCourseNotPublished is returned when a viewer requests an unpublished course.
	ErrCourseNotPublished = errors.New("course is not published")
	// ErrReplyDepth is returned when a reply targets another reply.
	ErrReplyDepth = errors.New("replies cannot be nested")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotAdmin is returned when a non-admin account attempts an admin login.
	ErrNotAdmin = errors.New("account does not have admin access")
	// ErrInvalidContent is returned when page content fails block validation.
	ErrInvalidContent = errors.New("invalid block content")
)
