package domain

type CtxKey string

const (
	// KeyUserID holds the authenticated user's id (JWT "sub"), not the profile id.
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)
