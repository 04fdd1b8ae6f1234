// Package versioning declares the run description schema versions this
// build knows about and the converter table between them.
//
// Two versions are distinguished process-wide: [CurrentVersion] is the
// schema of the live in-memory document, [StorageVersion] is the schema
// persisted by the storage layer, kept one step behind so older readers
// can still load new data. Both are compile-time constants; schema
// evolution is a code change, never a data-driven one.
package versioning

import (
	"sort"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
)

const (
	// CurrentVersion is the schema version of the live in-memory document.
	CurrentVersion = 1

	// StorageVersion is the schema version written to durable storage.
	StorageVersion = 0
)

// Converter transforms a document of one version into another. Converters
// are pure: they never mutate their input and non-identity conversions
// build a new document.
type Converter func(rundesc.Describer) (rundesc.Describer, error)

// conversion keys the converter table by (from, to) version pair.
type conversion struct {
	From, To int
}

// converters is the total conversion table. Every version pair this build
// supports has an entry; identity entries return the input unchanged.
// A missing pair is a build defect, surfaced by Convert as an
// UNSUPPORTED_CONVERSION error rather than passing data through.
var converters = map[conversion]Converter{
	{From: 0, To: 0}: identity,
	{From: 0, To: 1}: upgradeV0ToV1,
	{From: 1, To: 0}: downgradeV1ToV0,
	{From: 1, To: 1}: identity,
}

func identity(d rundesc.Describer) (rundesc.Describer, error) {
	return d, nil
}

// Convert expresses d at the target version using the registered converter
// for the (native, target) pair.
func Convert(d rundesc.Describer, target int) (rundesc.Describer, error) {
	conv, ok := converters[conversion{From: d.Version(), To: target}]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnsupportedConversion,
			"no converter registered for version %d -> %d", d.Version(), target)
	}
	return conv(d)
}

// ToCurrent converts d to the current version and returns the concrete
// current variant.
func ToCurrent(d rundesc.Describer) (*rundesc.DescriberV1, error) {
	out, err := Convert(d, CurrentVersion)
	if err != nil {
		return nil, err
	}
	cur, ok := out.(*rundesc.DescriberV1)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			"converter for version %d -> %d returned %T", d.Version(), CurrentVersion, out)
	}
	return cur, nil
}

// KnownVersions returns the sorted set of versions the converter table
// covers, derived from its identity entries.
func KnownVersions() []int {
	var versions []int
	for key := range converters {
		if key.From == key.To {
			versions = append(versions, key.From)
		}
	}
	sort.Ints(versions)
	return versions
}
