// Package mocks provides shared test doubles for the store and auth interfaces.
//
// Store mocks are built on testify/mock and are configured with On(...).
// Token and password mocks use function fields with fixed defaults, which keeps
// simple service tests short:
//
//	hasher := &mocks.MockPasswordHasher{ShouldSucceed: true}
//	tokens := mocks.NewMockTokenService()
package mocks
