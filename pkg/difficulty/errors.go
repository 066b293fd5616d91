package difficulty

import "errors"

// ErrLookupFailed is returned by CumulativeWork when a parent lookup fails
// while walking a commit's first-parent ancestry — either the collaborator
// reported an IO error, or a commit named as someone's parent could not be
// found, which breaks the "every chain terminates at a root" invariant the
// walk otherwise relies on.
var ErrLookupFailed = errors.New("difficulty: parent lookup failed")
