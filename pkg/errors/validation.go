package errors

import (
	"strings"
	"unicode"
)

// ValidateBasename checks an output file basename (no extension, no directory).
//
// Rules:
//   - not empty, at most 128 characters
//   - no control characters
//   - no path separators or parent references
//   - not a hidden file
func ValidateBasename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "basename cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidPath, "basename too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "basename contains invalid control characters")
		}
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "basename cannot contain path components: %q", name)
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "basename cannot be a hidden file: %q", name)
	}
	return nil
}

// ValidateOutputDir checks an output directory path. Relative and absolute
// paths are allowed; empty means the working directory.
func ValidateOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	const maxPathLength = 1024
	if len(dir) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}
	for _, r := range dir {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid control characters")
		}
	}
	return nil
}
