// Package translation talks to the remote translation endpoint. The default
// provider is a DeepL-compatible JSON endpoint answering {code, data}; OpenAI
// and Gemini chat models can be used instead. It also provides a circuit
// breaker wrapper and an in-memory translation cache for one-shot use.
package translation
