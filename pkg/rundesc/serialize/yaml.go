package serialize

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

// ToYAMLForStorage serializes d to block-style YAML at the storage
// version.
func ToYAMLForStorage(d rundesc.Describer) (string, error) {
	return ToYAMLAsVersion(d, versioning.StorageVersion)
}

// ToYAMLAsVersion serializes d to block-style YAML at the given version.
func ToYAMLAsVersion(d rundesc.Describer, version int) (string, error) {
	m, err := ToMappingAsVersion(d, version)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode run description YAML")
	}
	return string(data), nil
}

// WriteYAMLAsVersion serializes d at the given version and writes the YAML
// to w. The writer is used for the duration of this call only.
func WriteYAMLAsVersion(w io.Writer, d rundesc.Describer, version int) error {
	s, err := ToYAMLAsVersion(d, version)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write run description YAML")
	}
	return nil
}

// FromYAMLToNative deserializes YAML into a document of the version the
// text declares.
func FromYAMLToNative(yamlStr string) (rundesc.Describer, error) {
	m, err := decodeYAML(yamlStr)
	if err != nil {
		return nil, err
	}
	return FromMappingToNative(m)
}

// FromYAMLToCurrent deserializes YAML into a document of the current
// version.
func FromYAMLToCurrent(yamlStr string) (*rundesc.DescriberV1, error) {
	m, err := decodeYAML(yamlStr)
	if err != nil {
		return nil, err
	}
	return FromMappingToCurrent(m)
}

// decodeYAML parses YAML and normalizes the result to plain primitive
// containers. The YAML parser can hand back map[any]any for nested
// mappings; nothing past this boundary may see such a type, so every
// container is rebuilt as map[string]any or []any before the mapping
// reaches the dict codec.
func decodeYAML(yamlStr string) (rundesc.Mapping, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(yamlStr), &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode run description YAML")
	}
	norm, err := normalizeValue(raw)
	if err != nil {
		return nil, err
	}
	m, ok := norm.(rundesc.Mapping)
	if !ok {
		return nil, errors.New(errors.ErrCodeParse,
			"run description YAML is not a mapping (got %T)", norm)
	}
	return m, nil
}

func normalizeValue(v any) (any, error) {
	switch val := v.(type) {
	case map[string]any:
		out := make(rundesc.Mapping, len(val))
		for k, e := range val {
			norm, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[k] = norm
		}
		return out, nil
	case map[any]any:
		out := make(rundesc.Mapping, len(val))
		for k, e := range val {
			key, ok := k.(string)
			if !ok {
				return nil, errors.New(errors.ErrCodeParse,
					"mapping key %v is not a string", k)
			}
			norm, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[key] = norm
		}
		return out, nil
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			norm, err := normalizeValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = norm
		}
		return out, nil
	default:
		return v, nil
	}
}
