/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package typeinfo

import (
	tp "github.com/xlab/treeprint"
)

// Sprint renders the ancestor graph of in as an indented tree for
// diagnostics and test output. The root line is in's class name; each
// nested branch is one declared parent, in declaration order. Ancestors
// reachable through more than one path are printed once per path, so
// diamonds show up as repeated subtrees.
func Sprint(in *Info) string {
	if in == nil {
		return ""
	}
	tree := tp.NewWithRoot(in.name)
	addParents(tree, in)
	return tree.String()
}

func addParents(branch tp.Tree, in *Info) {
	for _, p := range in.parents {
		addParents(branch.AddBranch(p.name), p)
	}
}
