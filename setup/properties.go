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
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// libraryReferencePrefix is the key family declaring referenced library
// projects in a project.properties file. The full key is the prefix
// followed by a positive integer ordinal.
const libraryReferencePrefix = "android.library.reference."

var (
	targetVersionPattern    = regexp.MustCompile(`target=android-(\d+)`)
	libraryReferencePattern = regexp.MustCompile(regexp.QuoteMeta(libraryReferencePrefix) + `(\d+)\s*=`)
)

// readTargetVersion returns the build target declared in a
// project.properties file ("23" for target=android-23), or the empty string
// if the file declares no target.
func readTargetVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if m := targetVersionPattern.FindSubmatch(data); m != nil {
		return string(m[1]), nil
	}
	return "", nil
}

// writeTargetVersion upserts target=android-<version> into a
// project.properties file, replacing an existing declaration in place or
// appending a new line if there is none. The whole file is rewritten, so
// writing the same version twice leaves it byte for byte unchanged. An
// empty version is a no-op.
func writeTargetVersion(path, version string) error {
	if version == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	entry := "target=android-" + version

	var text string
	if loc := targetVersionPattern.FindIndex(data); loc != nil {
		text = string(data[:loc[0]]) + entry + string(data[loc[1]:])
	} else {
		text = string(data)
		if text != "" && !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		text += entry + "\n"
	}

	return os.WriteFile(path, []byte(text), 0666)
}

// addLibraryReferences appends an android.library.reference.N entry for
// each relative path, numbering from one past the highest ordinal already
// in the file. Ordinals are never reused and gaps between existing ordinals
// are never backfilled. All new entries are written in a single rewrite;
// the paths themselves are not checked for duplicates.
func addLibraryReferences(path string, relativePaths []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	next := 1
	for _, m := range libraryReferencePattern.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n >= next {
			next = n + 1
		}
	}

	var sb strings.Builder
	sb.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		sb.WriteByte('\n')
	}
	for i, relativePath := range relativePaths {
		fmt.Fprintf(&sb, "%s%d=%s\n", libraryReferencePrefix, next+i, relativePath)
	}

	return os.WriteFile(path, []byte(sb.String()), 0666)
}
