package ebook

import "errors"

var (
	ErrEbookNotFound = errors.New("ebook not found")
)
