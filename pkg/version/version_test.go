package version

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expected      Version
		expectedError bool
	}{
		{
			name:  "major only",
			input: "6",
			expected: Version{
				Major:     6,
				Minor:     0,
				Patch:     0,
				Precision: 1,
			},
			expectedError: false,
		},
		{
			name:  "major.minor",
			input: "6.10",
			expected: Version{
				Major:     6,
				Minor:     10,
				Patch:     0,
				Precision: 2,
			},
			expectedError: false,
		},
		{
			name:  "full version",
			input: "6.10.3",
			expected: Version{
				Major:     6,
				Minor:     10,
				Patch:     3,
				Precision: 3,
			},
			expectedError: false,
		},
		{
			name:  "full version with v prefix",
			input: "v1.31.2",
			expected: Version{
				Major:     1,
				Minor:     31,
				Patch:     2,
				Precision: 3,
			},
			expectedError: false,
		},
		{
			name:  "version with zeros",
			input: "v0.0.0",
			expected: Version{
				Major:     0,
				Minor:     0,
				Patch:     0,
				Precision: 3,
			},
			expectedError: false,
		},
		{
			name:  "kernel release with arch extras",
			input: "6.10.3-arch1-1",
			expected: Version{
				Major:     6,
				Minor:     10,
				Patch:     3,
				Precision: 3,
				Extras:    "-arch1-1",
			},
			expectedError: false,
		},
		{
			name:  "kernel release with zen extras",
			input: "6.9.7-zen1-1-zen",
			expected: Version{
				Major:     6,
				Minor:     9,
				Patch:     7,
				Precision: 3,
				Extras:    "-zen1-1-zen",
			},
			expectedError: false,
		},
		{
			name:  "kubelet version with provider extras",
			input: "v1.33.5-eks-3025e55",
			expected: Version{
				Major:     1,
				Minor:     33,
				Patch:     5,
				Precision: 3,
				Extras:    "-eks-3025e55",
			},
			expectedError: false,
		},
		{
			name:  "extras containing dots",
			input: "v1.28.0-gke.1337000",
			expected: Version{
				Major:     1,
				Minor:     28,
				Patch:     0,
				Precision: 3,
				Extras:    "-gke.1337000",
			},
			expectedError: false,
		},
		{
			name:  "build metadata with plus",
			input: "1.2.3+build.42",
			expected: Version{
				Major:     1,
				Minor:     2,
				Patch:     3,
				Precision: 3,
				Extras:    "+build.42",
			},
			expectedError: false,
		},
		{
			name:          "invalid - too many components",
			input:         "1.2.3.4",
			expected:      Version{},
			expectedError: true,
		},
		{
			name:          "invalid - non-numeric",
			input:         "v1.2.a",
			expected:      Version{},
			expectedError: true,
		},
		{
			name:          "invalid - empty string",
			input:         "",
			expected:      Version{},
			expectedError: true,
		},
		{
			name:          "invalid - leading dash",
			input:         "-1",
			expected:      Version{},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseVersion(tt.input)
			if tt.expectedError {
				if err == nil {
					t.Errorf("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if result.Major != tt.expected.Major {
				t.Errorf("Major: got %d, want %d", result.Major, tt.expected.Major)
			}
			if result.Minor != tt.expected.Minor {
				t.Errorf("Minor: got %d, want %d", result.Minor, tt.expected.Minor)
			}
			if result.Patch != tt.expected.Patch {
				t.Errorf("Patch: got %d, want %d", result.Patch, tt.expected.Patch)
			}
			if result.Precision != tt.expected.Precision {
				t.Errorf("Precision: got %d, want %d", result.Precision, tt.expected.Precision)
			}
			if result.Extras != tt.expected.Extras {
				t.Errorf("Extras: got %q, want %q", result.Extras, tt.expected.Extras)
			}
		})
	}
}

func TestParseVersionErrorTypes(t *testing.T) {
	if _, err := ParseVersion(""); !errors.Is(err, ErrEmptyVersion) {
		t.Errorf("expected ErrEmptyVersion, got %v", err)
	}
	if _, err := ParseVersion("1.2.3.4"); !errors.Is(err, ErrTooManyComponents) {
		t.Errorf("expected ErrTooManyComponents, got %v", err)
	}
	if _, err := ParseVersion("a.b"); !errors.Is(err, ErrNonNumeric) {
		t.Errorf("expected ErrNonNumeric, got %v", err)
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name     string
		version  Version
		expected string
	}{
		{
			name:     "major only",
			version:  Version{Major: 6, Precision: 1},
			expected: "6",
		},
		{
			name:     "major.minor",
			version:  Version{Major: 6, Minor: 10, Precision: 2},
			expected: "6.10",
		},
		{
			name:     "full version",
			version:  Version{Major: 6, Minor: 10, Patch: 3, Precision: 3},
			expected: "6.10.3",
		},
		{
			name:     "zero version with precision 2",
			version:  Version{Major: 0, Minor: 1, Patch: 5, Precision: 2},
			expected: "0.1",
		},
		{
			name:     "extras excluded from String",
			version:  Version{Major: 6, Minor: 10, Patch: 3, Precision: 3, Extras: "-arch1-1"},
			expected: "6.10.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.version.String()
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestVersionFullString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "kernel release round trip", input: "6.10.3-arch1-1", expected: "6.10.3-arch1-1"},
		{name: "no extras", input: "6.10.3", expected: "6.10.3"},
		{name: "plus metadata", input: "1.2.3+build.42", expected: "1.2.3+build.42"},
		{name: "v prefix dropped", input: "v1.33.5-eks-3025e55", expected: "1.33.5-eks-3025e55"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParseVersion(tt.input)
			if got := v.FullString(); got != tt.expected {
				t.Errorf("FullString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEqualsOrNewer(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		other    string
		expected bool
	}{
		{name: "equal full versions", version: "6.10.3", other: "6.10.3", expected: true},
		{name: "newer patch", version: "6.10.4", other: "6.10.3", expected: true},
		{name: "older patch", version: "6.10.2", other: "6.10.3", expected: false},
		{name: "newer minor", version: "6.11.0", other: "6.10.9", expected: true},
		{name: "older major", version: "5.15.0", other: "6.1.0", expected: false},
		{name: "major precision matches any minor", version: "6", other: "6.10.3", expected: true},
		{name: "minor precision matches any patch", version: "6.10", other: "6.10.99", expected: true},
		{name: "minor precision older minor", version: "6.9", other: "6.10.0", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParseVersion(tt.version)
			other := MustParseVersion(tt.other)
			if got := v.EqualsOrNewer(other); got != tt.expected {
				t.Errorf("%s.EqualsOrNewer(%s) = %v, want %v", tt.version, tt.other, got, tt.expected)
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		other    string
		expected bool
	}{
		{name: "strictly newer patch", version: "6.10.4", other: "6.10.3", expected: true},
		{name: "equal is not newer", version: "6.10.3", other: "6.10.3", expected: false},
		{name: "major precision equal", version: "6", other: "6.10.3", expected: false},
		{name: "newer major", version: "7", other: "6.99.99", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParseVersion(tt.version)
			other := MustParseVersion(tt.other)
			if got := v.IsNewer(other); got != tt.expected {
				t.Errorf("%s.IsNewer(%s) = %v, want %v", tt.version, tt.other, got, tt.expected)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		other    string
		expected int
	}{
		{name: "equal", version: "6.10.3", other: "6.10.3", expected: 0},
		{name: "older", version: "6.10.2", other: "6.10.3", expected: -1},
		{name: "newer", version: "6.11.0", other: "6.10.3", expected: 1},
		{name: "lower precision wins", version: "6.10", other: "6.10.3", expected: 0},
		{name: "major only vs newer major", version: "5", other: "6.0.0", expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParseVersion(tt.version)
			other := MustParseVersion(tt.other)
			if got := v.Compare(other); got != tt.expected {
				t.Errorf("%s.Compare(%s) = %d, want %d", tt.version, tt.other, got, tt.expected)
			}
		})
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for invalid version")
		}
	}()
	MustParseVersion("not-a-version")
}
