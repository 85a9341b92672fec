// Package errors provides unified error handling for hydrokit services.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection following RFC 7807 and Google AIP-193.
//
// Hydration-domain constructors cover tree construction defects (TreeInvalid),
// catalog lookups (UnknownTree, UnknownNode, UnknownOperation), and run-time
// fetch failures (OperationFailed, Upstream, Timeout). The hydrate core itself
// never wraps a node operation's error; the service layer classifies failures
// at its boundary using these constructors.
package errors
