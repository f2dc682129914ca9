// Package auth implements the account-service core for the Exploree platform:
// bcrypt credential hashing, HS256 token issuance and verification, token
// transport resolution (bearer header with cookie fallback), shared-key
// service authorization, and a best-effort activity audit trail.
//
// Highlights:
//   - Users carry a UserStatus field persisted via Bun. SUSPENDED and INACTIVE
//     accounts are rejected at login before any password comparison happens.
//   - Tokens are stateless. Validity is a function of signature and expiry
//     only; there is no revocation list, so a rotated signing key invalidates
//     every outstanding token at once.
//   - Activity recording is fire and forget. A failed audit write never fails
//     the operation that triggered it.
package auth
