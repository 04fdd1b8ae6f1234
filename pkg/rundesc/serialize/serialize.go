package serialize

import (
	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

// FromMappingToNative reconstructs a document of whatever version the
// mapping declares. A version tag matching no known variant yields an
// UNKNOWN_VERSION error.
func FromMappingToNative(m rundesc.Mapping) (rundesc.Describer, error) {
	version, err := rundesc.MappingVersion(m)
	if err != nil {
		return nil, err
	}
	switch version {
	case 0:
		return rundesc.DescriberV0FromMapping(m)
	case 1:
		return rundesc.DescriberV1FromMapping(m)
	default:
		return nil, errors.New(errors.ErrCodeUnknownVersion,
			"unknown run description version %d", version)
	}
}

// FromMappingToCurrent reconstructs the document at its native version and
// converts it to the current version.
func FromMappingToCurrent(m rundesc.Mapping) (*rundesc.DescriberV1, error) {
	native, err := FromMappingToNative(m)
	if err != nil {
		return nil, err
	}
	return versioning.ToCurrent(native)
}

// ToMappingAsVersion converts d to the given version and serializes the
// result to its mapping form. Used with arbitrary targets by upgrade
// tooling; storage writes use [ToMappingForStorage].
func ToMappingAsVersion(d rundesc.Describer, version int) (rundesc.Mapping, error) {
	out, err := versioning.Convert(d, version)
	if err != nil {
		return nil, err
	}
	return out.ToMapping(), nil
}

// ToMappingForStorage serializes d to the mapping form of the storage
// version.
func ToMappingForStorage(d rundesc.Describer) (rundesc.Mapping, error) {
	return ToMappingAsVersion(d, versioning.StorageVersion)
}
