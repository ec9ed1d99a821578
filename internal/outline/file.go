package outline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

// FromFile outlines the policy at path, choosing the reader by extension.
func FromFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read policy file").
			WithContext("path", path).
			Build()
	}

	var rep *Report
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		rep, err = FromHTML(bytes.NewReader(data))
	default:
		rep, err = FromMarkdown(data)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "failed to parse policy file").
			WithContext("path", path).
			Build()
	}
	return rep, nil
}
