// Package auth provides authentication: password hashing, signed access and
// refresh tokens, and the login, registration and refresh flows built on them.
package auth
