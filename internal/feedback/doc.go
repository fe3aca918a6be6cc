// Package feedback builds mentoring prompts from a code snippet and raw
// review comments and asks a model to rephrase them.
//
// The prompt template lives in prompts/feedback.prompt and is embedded at
// build time. A [Generator] holds no per-call state: each GenerateFeedback
// call renders the template and makes exactly one model request.
package feedback
