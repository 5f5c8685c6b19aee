package zoho

import "fmt"

// AuthError reports a failed refresh-token exchange. The caller treats it as
// fatal for the current fetch cycle; retries are the caller's concern.
type AuthError struct {
	Status int
	Body   string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("token exchange failed: status %d: %s", e.Status, e.Body)
}

func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a paginated fetch aborted mid-stream. Partial holds
// every record accumulated before the failing page so the caller can decide
// whether the partial snapshot is usable.
type FetchError struct {
	Page    int
	Status  int
	Body    string
	Partial []RawLead
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lead fetch aborted at page %d after %d records: %v", e.Page, len(e.Partial), e.Err)
	}
	return fmt.Sprintf("lead fetch aborted at page %d after %d records: status %d: %s", e.Page, len(e.Partial), e.Status, e.Body)
}

func (e *FetchError) Unwrap() error { return e.Err }
