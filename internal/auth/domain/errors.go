package domain

import "fmt"

// ProviderCredentials is the email/password identity provider.
const ProviderCredentials = "credentials"

// AuthErrorType classifies a sign-in failure.
type AuthErrorType string

const (
	// CredentialsSignin means the submitted credentials were rejected.
	CredentialsSignin AuthErrorType = "CredentialsSignin"
	// CallbackRouteError means the provider failed while checking the credentials.
	CallbackRouteError AuthErrorType = "CallbackRouteError"
	// InvalidProvider means the requested sign-in method is not configured.
	InvalidProvider AuthErrorType = "InvalidProvider"
)

// Messages shown beside the login form.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgSomethingWentWrong = "Something went wrong."
)

// AuthError is the failure raised by an identity provider.
type AuthError struct {
	Type AuthErrorType
	Err  error
}

// NewAuthError builds an AuthError of the given type with an optional cause.
func NewAuthError(errType AuthErrorType, cause error) *AuthError {
	return &AuthError{Type: errType, Err: cause}
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Message maps the failure to the text displayed to the user.
func (e *AuthError) Message() string {
	if e.Type == CredentialsSignin {
		return MsgInvalidCredentials
	}
	return MsgSomethingWentWrong
}
