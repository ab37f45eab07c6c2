// Package cli defines the libretranslator commands and flags and resolves
// endpoint, credential, language and UI settings from flags, environment
// variables and the YAML config file.
package cli
