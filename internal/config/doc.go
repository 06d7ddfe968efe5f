// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config.yaml. Every setting has
// a SELLWISE_ prefixed environment variable; the Gemini credential is also
// read from GEMINI_API_KEY.
package config
