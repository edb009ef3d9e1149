// Package testsupport provides shared fixtures for mvw tests: temp-dir
// configs, library stores with registered cleanup, and seeded movie rows.
package testsupport
