// Package inmo implements a small real-estate catalog backend: bcrypt
// credential hashing, HS256 session tokens carried in an http-only
// cookie, mongo-backed user and product stores, and the Fiber route
// layer that ties them together.
//
// Sessions:
//   - Tokens are self-contained; the server keeps no revocation list.
//     Logout clears the cookie client-side and expiry does the rest.
//   - The session middleware runs on every request. A missing, invalid
//     or expired token degrades to an anonymous session; protected
//     routes answer 401 through RequireAuth.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther to
//     describe registration and login events. Sinks run best-effort
//     (errors are logged) so you can forward events elsewhere without
//     blocking authentication.
package inmo
