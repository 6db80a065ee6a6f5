// Package service implements the application's use cases: registering and
// authenticating users, and owner-scoped management of spending records.
// Services depend only on store and auth interfaces.
package service
