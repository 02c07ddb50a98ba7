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

package pathparts

import (
	"strings"

	"github.com/walteh/filecomm/pkg/platform"
)

// 📄 FilePath is a path split into its directory, base name and extension
type FilePath struct {
	Dir  platform.Text // Everything up to and including the last separator
	Base platform.Text // Between the last separator and the last dot after it
	Ext  platform.Text // After that dot, empty when there is none
	ext  bool
}

// 🔍 Parse splits path into its components. Any string is accepted.
func Parse(path platform.Text) FilePath {
	var fp FilePath

	slash := strings.LastIndexAny(path, platform.Separators)
	if slash >= 0 {
		fp.Dir = path[:slash+1]
	}

	// only a dot inside the final segment marks an extension
	name := path[slash+1:]
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		fp.Base = name[:dot]
		fp.Ext = name[dot+1:]
		fp.ext = true
	} else {
		fp.Base = name
	}

	return fp
}

// HasExt reports whether the parsed path carried a dot in its final segment.
func (fp FilePath) HasExt() bool {
	return fp.ext
}

// 📝 String rebuilds the original path
func (fp FilePath) String() string {
	if fp.ext {
		return fp.Dir + fp.Base + "." + fp.Ext
	}
	return fp.Dir + fp.Base
}
