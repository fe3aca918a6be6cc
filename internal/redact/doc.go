// Package redact scrubs secret-looking values from review input before it
// is placed in a prompt.
//
// Detection is regex based and covers API key assignments, JWTs, private key
// headers, AWS keys, bearer tokens, database connection strings, and
// provider tokens (Anthropic, OpenAI, Hugging Face, GitHub, Slack).
package redact
