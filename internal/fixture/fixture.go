// Package fixture runs the record validator against known-valid and known-invalid
// character record documents and reports any fixture that is not judged as expected.
package fixture

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Kind states the verdict a fixture document expects from the validator.
type Kind string

const (
	// KindValid fixtures must be accepted.
	KindValid Kind = "valid"
	// KindInvalid fixtures must be rejected.
	KindInvalid Kind = "invalid"
)

const (
	ValidSuffix   = ".valid.json"
	InvalidSuffix = ".invalid.json"
)

// Fixture is a single document on disk together with its expected verdict.
type Fixture struct {
	Path string
	Kind Kind
}

// KindFromPath derives the fixture kind from a file name, e.g.
// character-record.valid.json. It returns false for files that are not fixtures.
func KindFromPath(path string) (Kind, bool) {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, InvalidSuffix) && len(base) > len(InvalidSuffix):
		return KindInvalid, true
	case strings.HasSuffix(base, ValidSuffix) && len(base) > len(ValidSuffix):
		return KindValid, true
	default:
		return "", false
	}
}

// Discover walks dir recursively and returns every fixture found, sorted by path.
// Hidden directories are skipped.
func Discover(ctx context.Context, dir string) ([]Fixture, error) {
	var fixtures []Fixture

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ce := ctx.Err(); ce != nil {
			return ce
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if kind, ok := KindFromPath(path); ok {
			fixtures = append(fixtures, Fixture{Path: path, Kind: kind})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(fixtures) == 0 {
		return nil, &NoFixturesError{Dir: dir}
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Path < fixtures[j].Path
	})
	return fixtures, nil
}
