package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrDuplicateIngredient = errors.New("ingredient id already used by another recipe")
	ErrNoPendingChanges    = errors.New("no pending changes")
	ErrEmptyImport         = errors.New("no valid records found")
	ErrMissingColumn       = errors.New("missing required column")
	ErrNoRecipeSelected    = errors.New("no recipe selected")
	ErrInvalidDate         = errors.New("invalid date, want YYYY-MM-DD")
	ErrNoExportTarget      = errors.New("no export target configured")
)
