package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/serialize"
)

// Supported exchange formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// validateFormat checks a format name.
func validateFormat(format string) error {
	switch format {
	case FormatJSON, FormatYAML:
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q (want %s or %s)", format, FormatJSON, FormatYAML)
	}
}

// formatFromPath infers the exchange format from a file extension.
func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"cannot infer format from %q; use --format", filepath.Base(path))
	}
}

// readDescription loads a run description file at its native version.
// It returns the document along with the format it was stored in.
func readDescription(path string) (rundesc.Describer, string, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, "", err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	var doc rundesc.Describer
	switch format {
	case FormatJSON:
		doc, err = serialize.FromJSONToNative(string(data))
	case FormatYAML:
		doc, err = serialize.FromYAMLToNative(string(data))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return doc, format, nil
}
