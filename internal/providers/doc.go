// Package providers implements the Model interface for each supported
// text-generation backend.
//
// Hugging Face inference (the default) goes through langchaingo. Anthropic,
// OpenAI, Gemini and Ollama / LM Studio are called directly over HTTPS with a
// shared JSON helper that maps status codes onto typed errors. Nothing here
// retries: every Invoke is exactly one request.
//
// Use [New] to obtain a Model by provider name.
package providers
