package xlbridge

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RunIdentity identifies one replication of one scenario of one
// experiment. It determines where an isolated replication's output goes.
type RunIdentity struct {
	Experiment  string
	Scenario    string
	Replication int
}

// DeriveOutputPath derives the output file path for a run from the input
// workbook path. An empty experiment name means in-place output: the
// input path is returned unchanged. Otherwise the base name is augmented
// with "_<experiment>_<scenario>_Rep<replication>" and the extension
// preserved, so repeated runs never clobber each other or the template.
//
// Paths with no directory component are placed under projectDir. Input
// that cannot be split is returned unchanged.
func DeriveOutputPath(inputPath, projectDir string, id RunIdentity) string {
	if inputPath == "" || id.Experiment == "" {
		return inputPath
	}
	dir, file := splitDirFile(inputPath)
	if file == "" {
		return inputPath
	}
	stem, ext := splitExt(file)
	name := fmt.Sprintf("%s_%s_%s_Rep%d%s", stem, id.Experiment, id.Scenario, id.Replication, ext)
	if dir == "" {
		if projectDir == "" {
			return name
		}
		return filepath.Join(projectDir, name)
	}
	return dir + name
}

// splitDirFile splits on the last separator, accepting both slash styles
// so Windows-authored paths survive on any host. The directory part keeps
// its trailing separator.
func splitDirFile(p string) (dir, file string) {
	i := strings.LastIndexAny(p, `/\`)
	if i < 0 {
		return "", p
	}
	return p[:i+1], p[i+1:]
}

// splitExt splits a file name into stem and extension. A leading dot is
// not an extension.
func splitExt(file string) (stem, ext string) {
	i := strings.LastIndexByte(file, '.')
	if i <= 0 {
		return file, ""
	}
	return file[:i], file[i:]
}
