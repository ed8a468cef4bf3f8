// Copyright 2017 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package setup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTestFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.properties")
	if err := os.WriteFile(path, []byte(contents), 0666); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestReadTargetVersion(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		version  string
	}{
		{"simple", "target=android-23\n", "23"},
		{"with other keys", "# comment\nsdk.dir=/opt/sdk\ntarget=android-19\n", "19"},
		{"first of several", "target=android-19\ntarget=android-23\n", "19"},
		{"no target", "sdk.dir=/opt/sdk\n", ""},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestFile(t, tc.contents)

			version, err := readTargetVersion(path)
			if err != nil {
				t.Fatalf("readTargetVersion failed: %v", err)
			}
			if version != tc.version {
				t.Errorf("Expected version %q, got %q", tc.version, version)
			}
		})
	}
}

func TestReadTargetVersionMissingFile(t *testing.T) {
	if _, err := readTargetVersion(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestWriteTargetVersion(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		version  string
		want     string
	}{
		{
			name:     "replace in place",
			contents: "sdk.dir=/opt/sdk\ntarget=android-19\nkey=value\n",
			version:  "23",
			want:     "sdk.dir=/opt/sdk\ntarget=android-23\nkey=value\n",
		},
		{
			name:     "append when absent",
			contents: "sdk.dir=/opt/sdk\n",
			version:  "23",
			want:     "sdk.dir=/opt/sdk\ntarget=android-23\n",
		},
		{
			name:     "append to file without trailing newline",
			contents: "sdk.dir=/opt/sdk",
			version:  "23",
			want:     "sdk.dir=/opt/sdk\ntarget=android-23\n",
		},
		{
			name:     "empty version is a no-op",
			contents: "target=android-19\n",
			version:  "",
			want:     "target=android-19\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestFile(t, tc.contents)

			if err := writeTargetVersion(path, tc.version); err != nil {
				t.Fatalf("writeTargetVersion failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, readTestFile(t, path)); diff != "" {
				t.Errorf("Unexpected file contents (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteTargetVersionIsIdempotent(t *testing.T) {
	path := writeTestFile(t, "sdk.dir=/opt/sdk\n")

	if err := writeTargetVersion(path, "23"); err != nil {
		t.Fatalf("writeTargetVersion failed: %v", err)
	}
	once := readTestFile(t, path)

	if err := writeTargetVersion(path, "23"); err != nil {
		t.Fatalf("writeTargetVersion failed: %v", err)
	}
	twice := readTestFile(t, path)

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Second write changed the file (-once +twice):\n%s", diff)
	}
}

func TestAddLibraryReferences(t *testing.T) {
	testCases := []struct {
		name     string
		contents string
		paths    []string
		want     string
	}{
		{
			name:     "empty file",
			contents: "",
			paths:    []string{"appcompat", "mediarouter"},
			want: "android.library.reference.1=appcompat\n" +
				"android.library.reference.2=mediarouter\n",
		},
		{
			name: "continues after existing ordinals",
			contents: "target=android-23\n" +
				"android.library.reference.1=foo\n",
			paths: []string{"appcompat"},
			want: "target=android-23\n" +
				"android.library.reference.1=foo\n" +
				"android.library.reference.2=appcompat\n",
		},
		{
			name: "never backfills gaps",
			contents: "android.library.reference.1=a\n" +
				"android.library.reference.2=b\n" +
				"android.library.reference.5=c\n",
			paths: []string{"d", "e"},
			want: "android.library.reference.1=a\n" +
				"android.library.reference.2=b\n" +
				"android.library.reference.5=c\n" +
				"android.library.reference.6=d\n" +
				"android.library.reference.7=e\n",
		},
		{
			name:     "file without trailing newline",
			contents: "target=android-23",
			paths:    []string{"appcompat"},
			want: "target=android-23\n" +
				"android.library.reference.1=appcompat\n",
		},
		{
			name:     "duplicate values are not checked",
			contents: "android.library.reference.1=appcompat\n",
			paths:    []string{"appcompat"},
			want: "android.library.reference.1=appcompat\n" +
				"android.library.reference.2=appcompat\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTestFile(t, tc.contents)

			if err := addLibraryReferences(path, tc.paths); err != nil {
				t.Fatalf("addLibraryReferences failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, readTestFile(t, path)); diff != "" {
				t.Errorf("Unexpected file contents (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddLibraryReferencesMissingFile(t *testing.T) {
	err := addLibraryReferences(filepath.Join(t.TempDir(), "missing"), []string{"appcompat"})
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
