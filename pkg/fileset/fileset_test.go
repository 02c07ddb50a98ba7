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

package fileset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"tiles/a.mif":        {Data: []byte("a")},
		"tiles/b.mif":        {Data: []byte("b")},
		"tiles/c.mid":        {Data: []byte("c")},
		"tiles/old/d.mif":    {Data: []byte("d")},
		"tiles/old/skip.mif": {Data: []byte("e")},
		"readme.txt":         {Data: []byte("r")},
	}
}

func TestExpandFS(t *testing.T) {
	tests := []struct {
		name        string
		patterns    []string
		exclude     []string
		want        []string
		wantErr     bool
		errContains string
	}{
		{
			name:     "single_level",
			patterns: []string{"tiles/*.mif"},
			want:     []string{"root/tiles/a.mif", "root/tiles/b.mif"},
		},
		{
			name:     "recursive",
			patterns: []string{"tiles/**/*.mif"},
			want:     []string{"root/tiles/a.mif", "root/tiles/b.mif", "root/tiles/old/d.mif", "root/tiles/old/skip.mif"},
		},
		{
			name:     "exclude",
			patterns: []string{"tiles/**/*.mif"},
			exclude:  []string{"**/skip.*"},
			want:     []string{"root/tiles/a.mif", "root/tiles/b.mif", "root/tiles/old/d.mif"},
		},
		{
			name:     "pattern_order_kept_and_deduplicated",
			patterns: []string{"readme.txt", "tiles/*.mi?", "tiles/a.mif"},
			want:     []string{"root/readme.txt", "root/tiles/a.mif", "root/tiles/b.mif", "root/tiles/c.mid"},
		},
		{
			name:        "no_match",
			patterns:    []string{"*.shp"},
			wantErr:     true,
			errContains: `pattern "*.shp" matched no files`,
		},
		{
			name:        "invalid_pattern",
			patterns:    []string{"tiles/[a"},
			wantErr:     true,
			errContains: "invalid pattern",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandFS(ctx, testFS(), "root", tt.patterns, tt.exclude)
			if tt.wantErr {
				require.Error(t, err, "expansion should fail")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "expansion should succeed")
			want := make([]string, len(tt.want))
			for i, w := range tt.want {
				want[i] = filepath.FromSlash(w)
			}
			assert.Equal(t, want, got, "file set should match")
		})
	}
}

func TestExpandOnDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a"), 0755), "creating fixture dir should succeed")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a", "x.csv"), []byte("1"), 0644), "writing fixture should succeed")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "y.csv"), []byte("2"), 0644), "writing fixture should succeed")

	got, err := Expand(context.Background(), dir, []string{"**/*.csv"}, nil)
	require.NoError(t, err, "expansion should succeed")
	assert.Equal(t, []string{filepath.Join(dir, "a", "x.csv"), filepath.Join(dir, "y.csv")}, got, "both files should be found in order")
}
