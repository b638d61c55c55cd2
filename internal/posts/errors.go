package posts

import "errors"

var (
	ErrUnsafePath      = errors.New("posts: computed file path escapes the posts directory")
	ErrWriterRequired  = errors.New("posts: writer is required")
	ErrSiteRootMissing = errors.New("posts: site root is required")
	ErrPostRequired    = errors.New("posts: post is required")
)
