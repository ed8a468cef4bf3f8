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
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/blueprint/pathtools"
	"github.com/google/go-cmp/cmp"
)

func TestCopyTree(t *testing.T) {
	src := map[string][]byte{
		"lib/project.properties":         []byte("android.library=true\n"),
		"lib/AndroidManifest.xml":        []byte("<manifest/>\n"),
		"lib/res/values/styles.xml":      []byte("<resources/>\n"),
		"lib/res/values-v21/styles.xml":  []byte("<resources/>\n"),
		"lib/libs/android-support-v7.jar": {0xca, 0xfe, 0xba, 0xbe},
	}
	mockFs := pathtools.MockFs(src)

	dst := filepath.Join(t.TempDir(), "out")
	if err := copyTree(mockFs, "lib", dst); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	got := map[string][]byte{}
	err := filepath.WalkDir(dst, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dst, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.Join("lib", rel)] = data
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk destination: %v", err)
	}

	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("Destination tree differs from source (-want +got):\n%s", diff)
	}
}

func TestCopyTreeSingleFile(t *testing.T) {
	mockFs := pathtools.MockFs(map[string][]byte{
		"lib/build.xml": []byte("<project/>\n"),
	})

	dst := filepath.Join(t.TempDir(), "build.xml")
	if err := copyTree(mockFs, "lib/build.xml", dst); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(data) != "<project/>\n" {
		t.Errorf("Unexpected file contents: %q", data)
	}
}

func TestCopyTreeOverwritesDestination(t *testing.T) {
	mockFs := pathtools.MockFs(map[string][]byte{
		"lib/project.properties": []byte("new\n"),
	})

	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(dst, "project.properties"), []byte("old\n"), 0666); err != nil {
		t.Fatalf("Failed to write existing file: %v", err)
	}

	if err := copyTree(mockFs, "lib", dst); err != nil {
		t.Fatalf("copyTree failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, "project.properties"))
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	if string(data) != "new\n" {
		t.Errorf("Destination not overwritten: %q", data)
	}
}

func TestCopyTreeMissingSource(t *testing.T) {
	mockFs := pathtools.MockFs(nil)

	if err := copyTree(mockFs, "missing", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("Expected error for missing source")
	}
}
