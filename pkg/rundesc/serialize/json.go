package serialize

import (
	"encoding/json"
	"io"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

// ToJSONForStorage serializes d to compact JSON at the storage version.
func ToJSONForStorage(d rundesc.Describer) (string, error) {
	return ToJSONAsVersion(d, versioning.StorageVersion)
}

// ToJSONAsVersion serializes d to compact JSON at the given version.
// Only upgrade tooling and tests need versions other than the storage
// version.
func ToJSONAsVersion(d rundesc.Describer, version int) (string, error) {
	m, err := ToMappingAsVersion(d, version)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode run description JSON")
	}
	return string(data), nil
}

// WriteJSONAsVersion serializes d at the given version and writes the JSON
// to w. The writer is used for the duration of this call only.
func WriteJSONAsVersion(w io.Writer, d rundesc.Describer, version int) error {
	s, err := ToJSONAsVersion(d, version)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, s); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write run description JSON")
	}
	return nil
}

// FromJSONToNative deserializes JSON into a document of the version the
// text declares.
func FromJSONToNative(jsonStr string) (rundesc.Describer, error) {
	m, err := decodeJSON(jsonStr)
	if err != nil {
		return nil, err
	}
	return FromMappingToNative(m)
}

// FromJSONToCurrent deserializes JSON into a document of the current
// version.
func FromJSONToCurrent(jsonStr string) (*rundesc.DescriberV1, error) {
	m, err := decodeJSON(jsonStr)
	if err != nil {
		return nil, err
	}
	return FromMappingToCurrent(m)
}

func decodeJSON(jsonStr string) (rundesc.Mapping, error) {
	var m rundesc.Mapping
	if err := json.Unmarshal([]byte(jsonStr), &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode run description JSON")
	}
	return m, nil
}
