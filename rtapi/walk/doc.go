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

// Package walk defines the traversal policy vocabulary for derives-from
// queries over the descriptor graph.
//
// The package is deliberately tiny: a Policy enum plus the usual textual
// plumbing (String, Parse, MustParse, MarshalText, UnmarshalText) so the
// policy can appear in configuration files and option lists. The actual
// traversal implementations live in the strategy package; this package only
// names them.
package walk
