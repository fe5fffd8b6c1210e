// Package api implements gate's authentication workflow and its HTTP surface.
//
// Service is the orchestrator: it composes the user store, the credential
// hasher and the token service into register/login/verify, and reports every
// expected failure as a typed error value (validation, conflict, not-found,
// invalid-credentials, unauthenticated). Only unexpected failures (store or
// crypto breakage) surface as plain errors, which the handler reports
// generically without leaking internals.
//
// Handler maps the workflow onto the wire contract: JSON bodies, an HttpOnly
// cookie named "token" carrying the session token, 201 on registration, 400
// for every client-attributable failure and 500 for internal ones.
package api
