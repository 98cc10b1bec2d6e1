// Package auth implements the credential lifecycle for a web application:
// registration input validation, password hashing, token issuance, and the
// authorization gate that rebuilds an authenticated identity from a bearer
// token on each protected request.
//
// Collaborators are injected rather than owned:
//   - UserStore is the persistence boundary. A bun-backed implementation is
//     provided in repo_users.go, but any store satisfying the interface works.
//   - Config supplies the process-lifetime signing key and token lifetime.
//   - Logger is the host application's logger; a stdout fallback is used when
//     none is provided.
//
// The HTTP surface (POST /register, POST /login, GET /me) lives in
// http_controller.go and can be mounted on a fiber application via
// RegisterAuthRoutes. IdentityResolver.ResolveIdentity is callable without a
// server, so the authorization gate is testable independently of any
// transport.
package auth
