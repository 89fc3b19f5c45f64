package controller

import (
	"errors"

	"github.com/dmitrijs2005/devlog/internal/common"
)

var (
	ErrValidation      = common.ErrValidation
	ErrUnauthenticated = common.ErrUnauthenticated
	ErrDeclined        = common.ErrDeclined

	// ErrSuperseded is returned by a list request whose result was discarded
	// because a newer list request was started.
	ErrSuperseded = errors.New("superseded by a newer request")

	ErrNotEditing = errors.New("no entry is being edited")
	ErrNotFound   = errors.New("entry not found")
	ErrBusy       = errors.New("generation already in progress")
	ErrNoExporter = errors.New("export is not configured")
)
