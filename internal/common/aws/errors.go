// internal/common/aws/errors.go
package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// credentialErrorCodes are the API error codes the control plane returns
// when the request is signed with missing, partial, or invalid credentials.
var credentialErrorCodes = map[string]bool{
	"UnrecognizedClientException": true,
	"InvalidClientTokenId":        true,
	"AuthFailure":                 true,
	"ExpiredToken":                true,
	"ExpiredTokenException":       true,
	"AccessDenied":                true,
	"AccessDeniedException":       true,
	"SignatureDoesNotMatch":       true,
	"MissingAuthenticationToken":  true,
}

// IsCredentialsError reports whether err is a credential failure, which
// callers classify separately from every other cloud API error.
func IsCredentialsError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && credentialErrorCodes[apiErr.ErrorCode()] {
		return true
	}

	// Credential-chain resolution failures never reach the API and carry
	// no error code.
	msg := err.Error()
	return strings.Contains(msg, "failed to retrieve credentials") ||
		strings.Contains(msg, "no EC2 IMDS role found") ||
		strings.Contains(msg, "static credentials are empty")
}
