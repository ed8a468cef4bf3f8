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

const (
	SetupNone = iota
	// SetupCopy copies the three support libraries from the SDK into the
	// platform directory.
	SetupCopy = 1 << iota
	// SetupConvert converts each copied library into an Android library
	// project, including the mediarouter->appcompat reference.
	SetupConvert
	// SetupLink adds the library references to the host project.
	SetupLink
	// SetupManifest registers the Play Services version metadata in the
	// host manifest.
	SetupManifest
	SetupAll = SetupCopy | SetupConvert | SetupLink | SetupManifest
)

// alreadyInitialized reports whether a previous run is assumed to have
// completed. The last library to be set up is the marker: if its
// destination directory exists, everything is skipped. A run that failed
// after the copy phase is indistinguishable from a completed one; remove
// the directory to force a re-run.
func alreadyInitialized(config Config) bool {
	exists, _, err := config.fs.Exists(config.LibraryDir(libraries[len(libraries)-1]))
	return err == nil && exists
}

// Setup prepares the host project's Android platform directory. The what
// bitmask selects which phases run; each phase assumes the prior ones have
// completed. Any failure is fatal and aborts the run, with no rollback of
// partially modified files.
func Setup(ctx Context, config Config, what int) {
	ctx.Verboseln("Environment:", config.Environment().Environ())

	if alreadyInitialized(config) {
		ctx.Printf("%s already exists, skipping library setup\n",
			config.LibraryDir(libraries[len(libraries)-1]))
		return
	}

	if what&SetupCopy != 0 {
		copyLibraries(ctx, config)
	}

	version := hostTargetVersion(ctx, config)

	appcompat, mediarouter, playServices := libraries[0], libraries[1], libraries[2]

	if what&SetupConvert != 0 {
		convertLibrary(ctx, config, appcompat, version)

		// mediarouter builds against appcompat's resources, so it has to be
		// linked before its own conversion.
		addReferences(ctx, config.LibraryProperties(mediarouter), "../"+appcompat.name)

		convertLibrary(ctx, config, mediarouter, version)
		convertLibrary(ctx, config, playServices, version)
	}

	if what&SetupLink != 0 {
		addReferences(ctx, config.ProjectProperties(),
			appcompat.name, mediarouter.name, playServices.name)
	}

	if what&SetupManifest != 0 {
		patchManifest(ctx, config)
	}
}

func copyLibraries(ctx Context, config Config) {
	ctx.BeginTrace("copy libraries")
	defer ctx.EndTrace()

	ensureDirectoriesExist(ctx, config.PlatformDir())

	for _, lib := range libraries {
		ctx.Printf("Copying %s from the SDK\n", lib.name)
		if err := copyTree(config.fs, config.LibrarySource(lib), config.LibraryDir(lib)); err != nil {
			ctx.Fatal(fileError(lib.name, err))
		}
	}
}

// hostTargetVersion reads the build target out of the host project's
// project.properties. An unreadable file is fatal; a file with no target
// declaration just means the library projects keep their own targets.
func hostTargetVersion(ctx Context, config Config) string {
	version, err := readTargetVersion(config.ProjectProperties())
	if err != nil {
		ctx.Fatal(fileError(config.ProjectProperties(), err))
	}
	if version == "" {
		ctx.Verboseln("No target=android-N in", config.ProjectProperties())
	}
	return version
}

// convertLibrary turns a copied library source tree into a referenceable
// library project: sync the build target with the host project, regenerate
// the project files with the SDK's android tool, then do a clean release
// build with ant.
func convertLibrary(ctx Context, config Config, lib library, version string) {
	ctx.BeginTrace("convert " + lib.name)
	defer ctx.EndTrace()

	ctx.Printf("Converting %s into a library project\n", lib.name)

	if err := writeTargetVersion(config.LibraryProperties(lib), version); err != nil {
		ctx.Fatal(fileError(config.LibraryProperties(lib), err))
	}

	runAndroidUpdate(ctx, config, config.LibraryDir(lib))
	runAnt(ctx, config, config.LibraryDir(lib), "clean")
	runAnt(ctx, config, config.LibraryDir(lib), "release")
}

func runAndroidUpdate(ctx Context, config Config, dir string) {
	cmd := Command(ctx, config, "android update lib-project",
		config.AndroidTool(), "update", "lib-project", "-p", dir)
	cmd.RunAndStreamOrFatal()
}

func runAnt(ctx Context, config Config, dir string, target string) {
	cmd := Command(ctx, config, "ant "+target, config.AntTool(), target)
	cmd.Dir = dir
	cmd.RunAndStreamOrFatal()
}

func addReferences(ctx Context, propertiesFile string, relativePaths ...string) {
	ctx.BeginTrace("link " + propertiesFile)
	defer ctx.EndTrace()

	if err := addLibraryReferences(propertiesFile, relativePaths); err != nil {
		ctx.Fatal(fileError(propertiesFile, err))
	}
}

func patchManifest(ctx Context, config Config) {
	ctx.BeginTrace("patch manifest")
	defer ctx.EndTrace()

	if err := ensureManifestFragment(config.Manifest(), gmsVersionMetadata, applicationClosingTag); err != nil {
		ctx.Fatal(fileError(config.Manifest(), err))
	}
}
