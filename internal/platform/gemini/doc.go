// Package gemini provides an implementation of the generation.TextGenerator
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter: it translates a bound
// generation.Prompt into a single GenerateContent request and translates the
// response, or the failure, back into the generation package's vocabulary
// without exposing genai types to callers.
//
// Key behaviors:
//
//   - Exactly one request per call. There is no retry; a failure is
//     classified and returned.
//   - The system instruction and sampling temperature come from the prompt
//     unchanged. The generated text is returned without post-processing.
//   - API errors are classified by HTTP status into generation failure kinds,
//     blocked prompts and safety stops become generation.ErrContentBlocked, and
//     responses without text become generation.ErrInvalidResponse.
//   - Requests are bounded by LLMConfig.RequestTimeout.
package gemini
