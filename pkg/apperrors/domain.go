package apperrors

import "net/http"

// Domain errors shared by the services. Kept as vars so callers can match
// them with apperrors.Is.
var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth", "Invalid credentials", http.StatusUnauthorized)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "auth", "User already exists", http.StatusConflict)
	ErrEmailNotVerified   = New(CodeUnauthorized, "auth", "Please verify your email before logging in", http.StatusUnauthorized)
	ErrInvalidAuthToken   = New(CodeInvalidToken, "auth", "Invalid token", http.StatusUnauthorized)
	ErrTokenExpired       = New(CodeTokenExpired, "auth", "Token has expired", http.StatusUnauthorized)
	ErrWeakPassword       = New(CodeValidationFailed, "auth", "Password must be at least 6 characters long", http.StatusBadRequest)

	ErrUserNotFound    = New(CodeNotFound, "user", "User not found", http.StatusNotFound)
	ErrMemberNotFound  = New(CodeNotFound, "member", "Member not found", http.StatusNotFound)
	ErrPhotoNotFound   = New(CodeNotFound, "photo", "Photo not found", http.StatusNotFound)
	ErrMessageNotFound = New(CodeNotFound, "message", "Message not found", http.StatusNotFound)

	ErrPhotoNotApproved = New(CodeInvalidOperation, "photo", "Photo is not approved", http.StatusBadRequest)
	ErrSelfLike         = New(CodeInvalidOperation, "like", "You cannot like yourself", http.StatusBadRequest)
	ErrNotYourMessage   = New(CodeForbidden, "message", "You are not a participant of this message", http.StatusForbidden)
	ErrProfileComplete  = New(CodeInvalidOperation, "auth", "Profile is already complete", http.StatusBadRequest)
)
