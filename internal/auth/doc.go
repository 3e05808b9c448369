// Package auth implements authentication and role-based authorization for
// EVCare-Admin. It holds the closed set of staff roles, the flat permission
// tokens with their Vietnamese descriptions, and the permission evaluator
// that answers "can role R perform action A". The evaluator prefers the
// authoritative database table and silently degrades to the compiled-in
// default table when the database is unavailable.
package auth
