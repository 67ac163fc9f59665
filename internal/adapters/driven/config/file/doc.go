// Package file provides file-based configuration and prompt storage.
//
// Configuration lives in a TOML file under the stratagem config
// directory. Prompts are plain text files the user can edit, with
// embedded defaults used when no file exists.
package file
