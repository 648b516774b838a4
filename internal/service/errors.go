package service

import "github.com/deppfellow/user-service/internal/errs"

var (
	codeInvalidAttributes = "USER_INVALID_ATTRIBUTES"
	codeUserNotFound      = "USER_NOT_FOUND"
	codeIDMismatch        = "USER_ID_MISMATCH"
)

// Named user errors. Match them with errors.Is; the comparison is by code,
// so a reworded copy (WithMessage) still matches.
var (
	ErrInvalidAttributes = errs.NewUnprocessableEntityError(
		"name and password must not be blank", false, &codeInvalidAttributes, nil)

	ErrUserNotFound = errs.NewNotFoundError("user not found", false, &codeUserNotFound)

	ErrIDMismatch = errs.NewBadRequestError(
		"id in body does not match id in path", false, &codeIDMismatch, nil, nil)
)
