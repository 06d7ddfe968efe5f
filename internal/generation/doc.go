// Package generation owns the prompt-templating and generation-request
// contract for SellWise. It holds the three marketing-copy templates, binds
// user-supplied fields into them, and issues exactly one request per call to
// a TextGenerator (the Gemini adapter in production, a stub in tests).
//
// The package performs no input validation of its own: callers guarantee that
// required fields are non-empty. Failures of the underlying service are never
// returned as Go errors from the flow operations; they are carried inside a
// Result so the presentation layer can decide how to render them.
package generation
