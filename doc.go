// Package auth issues and validates the signed bearer tokens used by the
// trade journal services and runs the hash based verification workflow that
// gates out-of-band user actions (registration confirmation, password reset,
// admin and organisation invites).
//
// Token kinds:
//   - Access tokens carry the user's authority names as scopes and authorize
//     API calls for the configured access TTL.
//   - Refresh tokens carry exactly ["REFRESH_TOKEN"] and exist only to mint
//     new pairs.
//   - Temporary tokens carry exactly ["TEMPORARY_TOKEN"], live for 900
//     seconds, and double as opaque verification hashes.
//
// There is no wire-level kind field: the scope shape is the discriminator,
// and every consumer asserts the shape it expects.
//
// Verification lifecycle:
//   - Send upserts a PENDING record per (email, type) and emails a link
//     embedding a fresh hash. Re-sending renews the record in place, which
//     retires any previously emailed hash; that overwrite is the single-use
//     and anti-replay mechanism, no blocklist involved.
//   - Retrieve maps a presented hash back to its record; every miss fails
//     with the same generic error so callers cannot probe which failure
//     mode occurred.
//   - Verify deletes the record, and for invite types chains into a
//     CHANGE_PASSWORD verification so invited users set their own password.
package auth
