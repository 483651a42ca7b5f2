// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database.
//
// Tests get a migrated pool with GetTestDBWithT and run inside WithTx, which
// rolls the transaction back when the test finishes so tests never see each
// other's rows. The database is located through DATABASE_URL, falling back to
// FEED_TEST_DB_URL. When neither is set the test is skipped.
package testdb
