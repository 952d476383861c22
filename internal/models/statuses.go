package models

type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

type TokenType string

const (
	TokenTypeVerification  TokenType = "VERIFICATION"
	TokenTypePasswordReset TokenType = "PASSWORD_RESET"
)

type MessageContainer string

const (
	ContainerInbox  MessageContainer = "inbox"
	ContainerOutbox MessageContainer = "outbox"
)
