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
	"errors"
	"os"
	"path/filepath"

	"github.com/google/blueprint/pathtools"
)

type Config struct{ *configImpl }

type configImpl struct {
	environ *Environment
	fs      pathtools.FileSystem

	sdkRoot    string
	projectDir string
	verbose    bool
}

// library describes one Android SDK support library that gets copied into
// the host project's platform directory and converted into a library
// project.
type library struct {
	// name is the directory name the library is copied to under the
	// platform directory.
	name string

	// source is the library's location relative to the SDK root.
	source string
}

// The three support libraries, in setup order. The last one doubles as the
// already-initialized marker: if its destination directory exists, a
// previous run is assumed to have completed.
var libraries = []library{
	{
		name:   "appcompat",
		source: filepath.Join("extras", "android", "support", "v7", "appcompat"),
	},
	{
		name:   "mediarouter",
		source: filepath.Join("extras", "android", "support", "v7", "mediarouter"),
	},
	{
		name:   "google-play-services_lib",
		source: filepath.Join("extras", "google", "google_play_services", "libproject", "google-play-services_lib"),
	},
}

// NewConfig captures the current environment and working directory. The
// Android SDK location must be exported in ANDROID_HOME (or the older
// ANDROID_SDK_ROOT); a missing SDK location is fatal.
func NewConfig(ctx Context) Config {
	ret := &configImpl{
		environ: OsEnvironment(),
		fs:      pathtools.OsFs,
	}

	if sdkRoot, ok := ret.environ.Get("ANDROID_HOME"); ok && sdkRoot != "" {
		ret.sdkRoot = sdkRoot
	} else if sdkRoot, ok := ret.environ.Get("ANDROID_SDK_ROOT"); ok && sdkRoot != "" {
		ret.sdkRoot = sdkRoot
	} else {
		ctx.Fatal(configError("ANDROID_HOME",
			errors.New("environment variable must point to the Android SDK")))
	}

	projectDir, err := os.Getwd()
	if err != nil {
		ctx.Fatal(configError("working directory", err))
	}
	ret.projectDir = projectDir

	ret.verbose = ret.environ.IsEnvTrue("SDKSETUP_VERBOSE")

	return Config{ret}
}

func (c *configImpl) Environment() *Environment {
	return c.environ
}

func (c *configImpl) Verbose() bool {
	return c.verbose
}

func (c *configImpl) SdkRoot() string {
	return c.sdkRoot
}

func (c *configImpl) ProjectDir() string {
	return c.projectDir
}

// PlatformDir is the host project's native Android platform directory.
func (c *configImpl) PlatformDir() string {
	return filepath.Join(c.projectDir, "platforms", "android")
}

// LogsDir is where the log and trace files for a setup run are written.
func (c *configImpl) LogsDir() string {
	return c.PlatformDir()
}

// ProjectProperties is the host project's project.properties file.
func (c *configImpl) ProjectProperties() string {
	return filepath.Join(c.PlatformDir(), "project.properties")
}

// Manifest is the host project's AndroidManifest.xml.
func (c *configImpl) Manifest() string {
	return filepath.Join(c.PlatformDir(), "AndroidManifest.xml")
}

// LibrarySource is the library's source tree under the SDK root.
func (c *configImpl) LibrarySource(lib library) string {
	return filepath.Join(c.sdkRoot, lib.source)
}

// LibraryDir is the library's destination under the platform directory.
func (c *configImpl) LibraryDir(lib library) string {
	return filepath.Join(c.PlatformDir(), lib.name)
}

// LibraryProperties is the library project's project.properties file.
func (c *configImpl) LibraryProperties(lib library) string {
	return filepath.Join(c.LibraryDir(lib), "project.properties")
}

// AndroidTool is the path to the SDK's `android` command line tool. It
// normally lives in tools/ under the SDK root, but may be overridden with
// ANDROID_TOOL.
func (c *configImpl) AndroidTool() string {
	if tool, ok := c.environ.Get("ANDROID_TOOL"); ok && tool != "" {
		return tool
	}
	return filepath.Join(c.sdkRoot, "tools", "android")
}

// AntTool is the `ant` executable used to build the converted library
// projects, resolved from PATH unless overridden with ANT_TOOL.
func (c *configImpl) AntTool() string {
	if tool, ok := c.environ.Get("ANT_TOOL"); ok && tool != "" {
		return tool
	}
	return "ant"
}
