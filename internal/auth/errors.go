package auth

import "errors"

var (
	// ErrUnknownRole is returned when a role string is not one of the five system roles.
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidOldPassword is returned when the provided old password does not match the user's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserNameOrEmailExists is returned when attempting to create a user with a username or email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with username or email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when an API bearer token fails validation.
	ErrInvalidToken = errors.New("invalid token")

	// errRoleNotInStore is an internal sentinel: the authoritative table has
	// no rows for the role, so the local defaults apply.
	errRoleNotInStore = errors.New("role not present in authoritative table")
)

// ErrorCodePermissionDenied is the stable error code surfaced to the UI when
// an action is denied. It is shown verbatim and never escalated.
const ErrorCodePermissionDenied = "PERMISSION_DENIED"
