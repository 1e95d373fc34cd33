package util

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrResourceNotFound   = errors.New("resource not found")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrURLRequired        = errors.New("URL is required for LINK type resources")
	ErrFileRequired       = errors.New("File is required for non-LINK resource types")
	ErrYearRequired       = errors.New("Year is required for PYQ resource type")
	ErrInvalidResourceTyp = errors.New("invalid resource type")
	ErrInvalidAction      = errors.New("invalid activity action")
)
