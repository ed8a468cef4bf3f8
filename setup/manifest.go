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
	"strings"
)

// gmsVersionMetadata is the metadata element Google Play Services requires
// inside <application> in the manifest.
const gmsVersionMetadata = `<meta-data android:name="com.google.android.gms.version" android:value="@integer/google_play_services_version" />`

const applicationClosingTag = "</application>"

// ensureManifestFragment injects fragment immediately before the first
// occurrence of closingTag and rewrites the file. If the fragment is
// already present anywhere in the file the file is left untouched. This is
// plain text substitution, not XML editing; it relies on the closing tag
// appearing exactly once in the manifest.
func ensureManifestFragment(path, fragment, closingTag string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	text := string(data)
	if strings.Contains(text, fragment) {
		return nil
	}

	idx := strings.Index(text, closingTag)
	if idx < 0 {
		return fmt.Errorf("no %s in %s", closingTag, path)
	}

	text = text[:idx] + fragment + "\n" + text[idx:]
	return os.WriteFile(path, []byte(text), 0666)
}
