package google

import "errors"

// Sentinel errors for the failure kinds callers branch on. Everything else
// coming out of this package is wrapped context around one of these or a
// plain remote error.
var (
	// ErrMissingClientConfig means interactive authorization cannot start
	// because no OAuth client ID/secret is configured. User-actionable and
	// distinct from any network failure.
	ErrMissingClientConfig = errors.New("google client configuration missing")

	// ErrAuthRefreshFailed means the stored credential was rejected on
	// refresh. The stale credential is cleared before this is returned.
	ErrAuthRefreshFailed = errors.New("token refresh rejected")

	// ErrRemoteQueryFailed wraps network or API errors from event listing.
	// The orchestrator retries with the wide fallback window on it.
	ErrRemoteQueryFailed = errors.New("remote calendar query failed")
)
