// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package keymap

import (
	"strings"
)

// MarkdownDoc generates markdown tables of the bindings, one section
// per category, followed by the conflicts if there are any.
func (t *Table) MarkdownDoc() string {
	var b strings.Builder

	// By action
	b.WriteString("### By action\n\n")
	b.WriteString("| Action                       | Keys |\n")
	b.WriteString("| ---------------------------- | ---- |\n")
	keys := make([][]string, ActionsN)
	for _, bd := range t.Bindings() {
		keys[bd.Action] = append(keys[bd.Action], "`"+string(bd.Chord())+"`")
	}
	for a := TranslateMode; a < ActionsN; a++ {
		b.WriteString("| " + a.String() + " | " + strings.Join(keys[a], ", ") + " |\n")
	}
	b.WriteString("\n\n")

	for c := TransformMode; c < CategoriesN; c++ {
		if len(t.cats[c]) == 0 {
			continue
		}
		b.WriteString("### " + c.String() + "\n\n")
		b.WriteString("| Key                          | Action | Single fire |\n")
		b.WriteString("| ---------------------------- | ------ | ----------- |\n")
		for _, bd := range t.cats[c] {
			sf := ""
			if bd.SingleFire {
				sf = "yes"
			}
			b.WriteString("| `" + string(bd.Chord()) + "` | " + bd.Action.String() + " | " + sf + " |\n")
		}
		b.WriteString("\n\n")
	}

	cfs := t.Conflicts()
	if len(cfs) == 0 {
		return b.String()
	}
	b.WriteString("### Conflicts\n\n")
	for _, cf := range cfs {
		cats := make([]string, len(cf.Categories))
		for i, c := range cf.Categories {
			cats[i] = c.String()
		}
		b.WriteString("- `" + string(cf.Chord) + "`: " + strings.Join(cats, ", ") + "\n")
	}
	return b.String()
}
