package serialize

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

func flatV0() *rundesc.DescriberV0 {
	return &rundesc.DescriberV0{InterDeps: rundesc.NewFlatInterDeps(
		rundesc.ParamSpec{Name: "gate_voltage", Type: "numeric", Label: "Gate voltage", Unit: "V"},
		rundesc.ParamSpec{Name: "conductance", Type: "array", Label: "Conductance", Unit: "e^2/h",
			DependsOn: []string{"gate_voltage"}},
		rundesc.ParamSpec{Name: "temperature", Type: "numeric", Label: "Mixing chamber", Unit: "mK"},
	)}
}

func graphV1() *rundesc.DescriberV1 {
	return &rundesc.DescriberV1{
		InterDeps: rundesc.InterDeps{
			Parameters: map[string]rundesc.ParamSpecBase{
				"gate_voltage": {Name: "gate_voltage", Type: "numeric", Label: "Gate voltage", Unit: "V"},
				"conductance":  {Name: "conductance", Type: "array", Label: "Conductance", Unit: "e^2/h"},
				"temperature":  {Name: "temperature", Type: "numeric", Label: "Mixing chamber", Unit: "mK"},
			},
			Dependencies: map[string][]string{
				"conductance": {"gate_voltage"},
			},
			Standalones: []string{"temperature"},
		},
		Shapes: map[string][]int{"conductance": {101}},
	}
}

func TestFromMappingToNativeDispatch(t *testing.T) {
	tests := []struct {
		name        string
		mapping     rundesc.Mapping
		wantVersion int
	}{
		{name: "version 0", mapping: flatV0().ToMapping(), wantVersion: 0},
		{name: "version 1", mapping: graphV1().ToMapping(), wantVersion: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := FromMappingToNative(tt.mapping)
			if err != nil {
				t.Fatalf("FromMappingToNative() error: %v", err)
			}
			if doc.Version() != tt.wantVersion {
				t.Errorf("Version() = %d, want %d", doc.Version(), tt.wantVersion)
			}
		})
	}
}

func TestFromMappingToNativeUnknownVersion(t *testing.T) {
	m := rundesc.Mapping{"version": 999, "interdependencies": rundesc.Mapping{}}
	_, err := FromMappingToNative(m)
	if !errors.Is(err, errors.ErrCodeUnknownVersion) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeUnknownVersion)
	}
}

func TestFromMappingToNativeMissingVersion(t *testing.T) {
	_, err := FromMappingToNative(rundesc.Mapping{"interdependencies": rundesc.Mapping{}})
	if !errors.Is(err, errors.ErrCodeInvalidMapping) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidMapping)
	}
}

func TestIdentityRoundTripPerVersion(t *testing.T) {
	// For every known version v, reconstructing a document from its mapping
	// and re-serializing it at v reproduces the mapping exactly.
	docs := map[int]rundesc.Describer{0: flatV0(), 1: graphV1()}

	for _, v := range versioning.KnownVersions() {
		doc := docs[v]
		m := doc.ToMapping()

		native, err := FromMappingToNative(m)
		if err != nil {
			t.Fatalf("version %d: FromMappingToNative() error: %v", v, err)
		}
		back, err := ToMappingAsVersion(native, v)
		if err != nil {
			t.Fatalf("version %d: ToMappingAsVersion() error: %v", v, err)
		}
		if diff := cmp.Diff(m, back); diff != "" {
			t.Errorf("version %d: mapping round trip mismatch (-want +got):\n%s", v, diff)
		}
	}
}

func TestFromMappingToCurrentUpgrades(t *testing.T) {
	cur, err := FromMappingToCurrent(flatV0().ToMapping())
	if err != nil {
		t.Fatalf("FromMappingToCurrent() error: %v", err)
	}
	if cur.Version() != versioning.CurrentVersion {
		t.Errorf("Version() = %d, want %d", cur.Version(), versioning.CurrentVersion)
	}
	if cur.Shapes != nil {
		t.Errorf("Shapes = %v, want nil after upgrade from version 0", cur.Shapes)
	}
}

func TestToMappingForStorage(t *testing.T) {
	m, err := ToMappingForStorage(graphV1())
	if err != nil {
		t.Fatalf("ToMappingForStorage() error: %v", err)
	}
	v, err := rundesc.MappingVersion(m)
	if err != nil {
		t.Fatalf("MappingVersion() error: %v", err)
	}
	if v != versioning.StorageVersion {
		t.Errorf("storage mapping version = %d, want %d", v, versioning.StorageVersion)
	}
	if _, ok := m["shapes"]; ok {
		t.Error("storage mapping still carries shapes")
	}
}

func TestToMappingAsVersionUnsupported(t *testing.T) {
	_, err := ToMappingAsVersion(graphV1(), 7)
	if !errors.Is(err, errors.ErrCodeUnsupportedConversion) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeUnsupportedConversion)
	}
}

func TestEmptyDocumentStorageScenario(t *testing.T) {
	// An empty current document downgrades to an empty storage mapping;
	// reading that mapping back to current restores empty defaults for the
	// fields that could not survive the trip.
	empty := &rundesc.DescriberV1{}

	m, err := ToMappingForStorage(empty)
	if err != nil {
		t.Fatalf("ToMappingForStorage() error: %v", err)
	}

	want := rundesc.Mapping{
		"version":           0,
		"interdependencies": rundesc.Mapping{"paramspecs": []any{}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("storage mapping mismatch (-want +got):\n%s", diff)
	}

	cur, err := FromMappingToCurrent(m)
	if err != nil {
		t.Fatalf("FromMappingToCurrent() error: %v", err)
	}
	if cur.Version() != 1 {
		t.Errorf("Version() = %d, want 1", cur.Version())
	}
	if cur.Shapes != nil {
		t.Errorf("Shapes = %v, want nil", cur.Shapes)
	}
	if len(cur.InterDeps.Parameters) != 0 {
		t.Errorf("Parameters = %v, want empty", cur.InterDeps.Parameters)
	}
}
