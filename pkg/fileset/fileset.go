// Copyright 2025 walteh LLC
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

// Package fileset turns glob patterns into the ordered batch of paths a job
// processes as one logical unit.
package fileset

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Expand resolves patterns relative to root. Matches of each pattern are
// sorted, patterns keep their order, and a path matched twice appears once.
// A pattern that matches nothing is an error. An empty root is the working directory.
func Expand(ctx context.Context, root string, patterns, exclude []string) ([]string, error) {
	if root == "" {
		root = "."
	}
	return ExpandFS(ctx, os.DirFS(root), root, patterns, exclude)
}

// ExpandFS is Expand over fsys; matches are joined onto root.
func ExpandFS(ctx context.Context, fsys fs.FS, root string, patterns, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	for _, p := range append(slices.Clone(patterns), exclude...) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid pattern %q", p)
		}
	}

	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		slices.Sort(matches)

		kept := 0
		for _, m := range matches {
			if excluded(m, exclude) {
				continue
			}
			kept++
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, filepath.Join(root, filepath.FromSlash(m)))
		}
		if kept == 0 {
			return nil, errors.Errorf("pattern %q matched no files", pattern)
		}
		logger.Debug().Str("pattern", pattern).Int("matches", kept).Msg("expanded file set pattern")
	}

	return out, nil
}

func excluded(path string, exclude []string) bool {
	for _, p := range exclude {
		if ok, _ := doublestar.Match(filepath.ToSlash(p), path); ok {
			return true
		}
	}
	return false
}
