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

package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent = 4  // spaces to indent file entries
	nameWidth  = 35 // Base width for filename
	roleWidth  = 15 // Width for the file's role
)

// 📎 Attachment is a file a job attached, and what it is for
type Attachment struct {
	Path string
	Role string // input, secondary, output, set
}

// 🎯 FormatAttachment formats an attached file for display
func FormatAttachment(a Attachment) string {
	var prefix string
	switch a.Role {
	case "output":
		prefix = color.GreenString("→")
	case "set":
		prefix = color.CyanString("•")
	default:
		prefix = color.YellowString("←")
	}

	// Format parts with padding
	namePart := fmt.Sprintf("%-*s", nameWidth, a.Path)
	rolePart := fmt.Sprintf("%-*s", roleWidth, a.Role)

	return fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		prefix,
		namePart,
		rolePart,
	)
}
