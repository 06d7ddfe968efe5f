// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: a struct with an optional Fn field per interface
// method, default return values used when the Fn field is nil, and call
// tracking guarded by a mutex so parallel subtests can share one mock.
//
//	gen := &mocks.MockTextGenerator{
//	    GenerateTextFn: func(ctx context.Context, p generation.Prompt) (string, error) {
//	        return "# Product Headline", nil
//	    },
//	}
package mocks
