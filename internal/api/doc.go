// Package api handles incoming HTTP requests for the copy generation flows.
// It serves the tabbed form page, accepts form submissions and JSON requests,
// validates them, hands them to the generation service and renders the
// resulting markdown. It acts as an adapter between external clients and the
// generation package, translating HTTP concerns to generation calls.
package api
