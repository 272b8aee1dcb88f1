package auth

import "errors"

// ErrEmailExists is returned by repositories on a duplicate email.
var ErrEmailExists = errors.New("email already exists")

// Auth specific error codes; shared codes live in pkg/errors.
const (
	CodeEmailExists       = "email_exists"
	CodeNotConfigured     = "auth_not_configured"
	CodeOAuthExchange     = "oauth_exchange_failed"
	CodeLinkingDisabled   = "account_linking_disabled"
	CodeInvalidOAuthInput = "invalid_request"
)
