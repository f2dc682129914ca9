package auth

import (
	"github.com/goliatone/go-errors"
)

// ErrInvalidCredentials covers unknown emails and wrong passwords alike; the
// message must stay identical for both so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("Invalid email or password", errors.CategoryAuth).
	WithTextCode("INVALID_CREDENTIALS").
	WithCode(errors.CodeUnauthorized)

// ErrUserSuspended is returned at login for suspended accounts, even when the
// submitted credentials are correct.
var ErrUserSuspended = errors.New("Your account has been suspended. Please contact support.", errors.CategoryAuth).
	WithTextCode("ACCOUNT_SUSPENDED").
	WithCode(errors.CodeForbidden)

// ErrUserInactive is returned at login for inactive accounts.
var ErrUserInactive = errors.New("Your account is inactive. Please contact support to reactivate.", errors.CategoryAuth).
	WithTextCode("ACCOUNT_INACTIVE").
	WithCode(errors.CodeForbidden)

// ErrTokenExpired is returned when a token fails validation on expiry alone.
var ErrTokenExpired = errors.New("Token is expired", errors.CategoryAuth).
	WithTextCode("TOKEN_EXPIRED").
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed covers bad signatures, wrong algorithms, and garbage input.
var ErrTokenMalformed = errors.New("Invalid authentication token", errors.CategoryAuth).
	WithTextCode("TOKEN_MALFORMED").
	WithCode(errors.CodeUnauthorized)

// ErrMissingToken is returned when no token could be resolved from a request.
var ErrMissingToken = errors.New("Unauthorized", errors.CategoryAuth).
	WithTextCode("MISSING_TOKEN").
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned when a valid identity lacks the required role.
var ErrForbidden = errors.New("Forbidden", errors.CategoryAuthz).
	WithTextCode("FORBIDDEN").
	WithCode(errors.CodeForbidden)

// ErrEmailTaken is returned when registration hits an existing email.
var ErrEmailTaken = errors.New("User with this email already exists", errors.CategoryConflict).
	WithTextCode("EMAIL_TAKEN").
	WithCode(errors.CodeBadRequest)

var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode("USER_NOT_FOUND").
	WithCode(errors.CodeNotFound)

// ErrSelfDeletion guards admins from deleting their own account.
var ErrSelfDeletion = errors.New("Cannot delete your own account", errors.CategoryValidation).
	WithTextCode("SELF_DELETION").
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the internal bcrypt mismatch marker; the
// HTTP surface translates it to ErrInvalidCredentials.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithTextCode("PASSWORD_MISMATCH").
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)
