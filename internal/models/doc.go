// Package models lists the chat models an OpenAI-compatible API key can use
// for translation.
package models
