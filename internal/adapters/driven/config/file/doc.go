// Package file provides file-based implementations of configuration
// and prompt storage. Configuration lives in a TOML file and prompts
// in user-editable text files under the tarifbot config directory.
package file
