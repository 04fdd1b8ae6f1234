package serialize

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/labkit-io/rundesc/pkg/errors"
	"github.com/labkit-io/rundesc/pkg/rundesc/versioning"
)

func TestJSONRoundTripNative(t *testing.T) {
	doc := graphV1()

	s, err := ToJSONAsVersion(doc, 1)
	if err != nil {
		t.Fatalf("ToJSONAsVersion() error: %v", err)
	}

	back, err := FromJSONToNative(s)
	if err != nil {
		t.Fatalf("FromJSONToNative() error: %v", err)
	}
	if diff := cmp.Diff(doc.ToMapping(), back.ToMapping()); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestToJSONForStorageVersion(t *testing.T) {
	s, err := ToJSONForStorage(graphV1())
	if err != nil {
		t.Fatalf("ToJSONForStorage() error: %v", err)
	}

	doc, err := FromJSONToNative(s)
	if err != nil {
		t.Fatalf("FromJSONToNative() error: %v", err)
	}
	if doc.Version() != versioning.StorageVersion {
		t.Errorf("stored version = %d, want %d", doc.Version(), versioning.StorageVersion)
	}
}

func TestToJSONIsCompact(t *testing.T) {
	s, err := ToJSONAsVersion(flatV0(), 0)
	if err != nil {
		t.Fatalf("ToJSONAsVersion() error: %v", err)
	}
	if strings.ContainsAny(s, "\n\t") {
		t.Errorf("compact JSON contains whitespace formatting: %q", s)
	}
}

func TestFromJSONToCurrentUpgrades(t *testing.T) {
	s, err := ToJSONForStorage(graphV1())
	if err != nil {
		t.Fatalf("ToJSONForStorage() error: %v", err)
	}

	cur, err := FromJSONToCurrent(s)
	if err != nil {
		t.Fatalf("FromJSONToCurrent() error: %v", err)
	}
	if cur.Version() != versioning.CurrentVersion {
		t.Errorf("Version() = %d, want %d", cur.Version(), versioning.CurrentVersion)
	}
}

func TestFromJSONMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "truncated", text: `{"version": 0,`},
		{name: "not a mapping", text: `[1, 2, 3]`},
		{name: "empty", text: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromJSONToNative(tt.text); !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("error = %v, want code %v", err, errors.ErrCodeParse)
			}
		})
	}
}

func TestFromJSONUnknownVersion(t *testing.T) {
	_, err := FromJSONToCurrent(`{"version": 999, "interdependencies": {}}`)
	if !errors.Is(err, errors.ErrCodeUnknownVersion) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeUnknownVersion)
	}
}

func TestWriteJSONAsVersion(t *testing.T) {
	var sb strings.Builder
	if err := WriteJSONAsVersion(&sb, graphV1(), 0); err != nil {
		t.Fatalf("WriteJSONAsVersion() error: %v", err)
	}

	doc, err := FromJSONToNative(sb.String())
	if err != nil {
		t.Fatalf("FromJSONToNative() error: %v", err)
	}
	if doc.Version() != 0 {
		t.Errorf("written version = %d, want 0", doc.Version())
	}
}
