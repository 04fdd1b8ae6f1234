package rundesc

import (
	"testing"

	"github.com/labkit-io/rundesc/pkg/errors"
)

func TestNewFlatInterDepsSortsByName(t *testing.T) {
	deps := NewFlatInterDeps(
		ParamSpec{Name: "zeta", Type: "numeric"},
		ParamSpec{Name: "alpha", Type: "numeric"},
		ParamSpec{Name: "mid", Type: "numeric"},
	)
	want := []string{"alpha", "mid", "zeta"}
	for i, spec := range deps.ParamSpecs {
		if spec.Name != want[i] {
			t.Errorf("ParamSpecs[%d].Name = %q, want %q", i, spec.Name, want[i])
		}
	}
}

func TestInterDepsValidate(t *testing.T) {
	params := map[string]ParamSpecBase{
		"a": {Name: "a", Type: "numeric"},
		"b": {Name: "b", Type: "numeric"},
	}

	tests := []struct {
		name    string
		deps    InterDeps
		wantErr bool
	}{
		{
			name: "consistent graph",
			deps: InterDeps{
				Parameters:   params,
				Dependencies: map[string][]string{"a": {"b"}},
			},
		},
		{
			name: "dependency value may reference external name",
			deps: InterDeps{
				Parameters:   params,
				Dependencies: map[string][]string{"a": {"external"}},
			},
		},
		{
			name: "dependency key must be registered",
			deps: InterDeps{
				Parameters:   params,
				Dependencies: map[string][]string{"ghost": {"a"}},
			},
			wantErr: true,
		},
		{
			name: "inference key must be registered",
			deps: InterDeps{
				Parameters: params,
				Inferences: map[string][]string{"ghost": {"a"}},
			},
			wantErr: true,
		},
		{
			name: "standalone must be registered",
			deps: InterDeps{
				Parameters:  params,
				Standalones: []string{"ghost"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.deps.Validate()
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidMapping) {
				t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidMapping)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error: %v", err)
			}
		})
	}
}

func TestInterDepsFromMappingRejectsNameMismatch(t *testing.T) {
	m := Mapping{
		"parameters": Mapping{
			"a": Mapping{"name": "b", "paramtype": "numeric"},
		},
	}
	if _, err := interDepsFromMapping(m); !errors.Is(err, errors.ErrCodeInvalidMapping) {
		t.Errorf("error = %v, want code %v", err, errors.ErrCodeInvalidMapping)
	}
}

func TestInterDepsFromMappingSortsStandalones(t *testing.T) {
	m := Mapping{
		"parameters": Mapping{
			"b": Mapping{"name": "b", "paramtype": "numeric"},
			"a": Mapping{"name": "a", "paramtype": "numeric"},
		},
		"standalones": []any{"b", "a"},
	}
	deps, err := interDepsFromMapping(m)
	if err != nil {
		t.Fatalf("interDepsFromMapping() error: %v", err)
	}
	if len(deps.Standalones) != 2 || deps.Standalones[0] != "a" || deps.Standalones[1] != "b" {
		t.Errorf("Standalones = %v, want [a b]", deps.Standalones)
	}
}

func TestFlatInterDepsFromMappingMissingSpecs(t *testing.T) {
	deps, err := flatInterDepsFromMapping(Mapping{})
	if err != nil {
		t.Fatalf("flatInterDepsFromMapping() error: %v", err)
	}
	if len(deps.ParamSpecs) != 0 {
		t.Errorf("ParamSpecs = %v, want empty", deps.ParamSpecs)
	}
}
