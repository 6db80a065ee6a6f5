// Package mocks provides centralized test doubles for the service and store
// interfaces.
//
// Two styles are available. Function-field mocks (MockTokenService,
// MockPasswordHasher) fall back to default values when a function is not set.
// TestifyMockUserCollection records expectations with testify/mock. For
// behaviour-level tests, MemoryCollection is a working in-memory
// store.Collection.
//
// Usage:
//
//	tokens := &mocks.MockTokenService{
//	    GenerateTokenFn: func(ctx context.Context, subject string) (auth.AccessToken, error) {
//	        return auth.AccessToken{Value: "mocked-token", Subject: subject}, nil
//	    },
//	}
package mocks
