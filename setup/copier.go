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
	"io"
	"os"
	"path/filepath"

	"github.com/google/blueprint/pathtools"
)

// copyTree copies the src tree read through fs into dst on the local
// filesystem, creating directories as needed. Existing destination files
// are overwritten. Symlinks and file modes are not preserved, and a failure
// partway through leaves a partially copied destination behind.
func copyTree(fs pathtools.FileSystem, src, dst string) error {
	isDir, err := fs.IsDir(src)
	if err != nil {
		return err
	}

	if !isDir {
		return copyFileContents(fs, src, dst)
	}

	if err := os.MkdirAll(dst, 0777); err != nil {
		return err
	}

	names, err := fs.ReadDirNames(src)
	if err != nil {
		return err
	}

	for _, name := range names {
		err := copyTree(fs, filepath.Join(src, name), filepath.Join(dst, name))
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFileContents(fs pathtools.FileSystem, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
