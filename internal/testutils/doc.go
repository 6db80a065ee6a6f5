// Package testutils provides HTTP helpers shared by handler and end-to-end
// tests: issuing JSON and form requests against a handler and asserting on
// the API's response envelopes.
package testutils
