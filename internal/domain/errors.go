package domain

import "errors"

var (
	ErrUnknownSet       = errors.New("unknown card set")
	ErrGalleryNotFound  = errors.New("gallery not found")
	ErrSectionNotFound  = errors.New("cards gallery section not found")
	ErrUpstreamWiki     = errors.New("upstream wiki failure")
	ErrUnknownOption    = errors.New("unknown site option")
	ErrInvalidSortOrder = errors.New("sort must be name or cost")
)
