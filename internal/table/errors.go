package table

import "errors"

// ErrUnreadableDocument indicates the container format could not be
// parsed at all. Fatal: nothing downstream runs.
var ErrUnreadableDocument = errors.New("unreadable document")

// ErrEmptySheet indicates a sheet with zero data rows. Non-fatal: the
// sheet is marked non-answerable and skipped downstream.
var ErrEmptySheet = errors.New("empty sheet")
