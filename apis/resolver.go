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

package apis

import (
	"dirpx.dev/rttx/typeinfo"
)

// Resolver coordinates strategies to answer descriptor queries.
// Typical chain: Typed -> Binding -> Identity -> Walk.
type Resolver interface {
	// Info returns the descriptor of v's actual constructed type, or
	// (nil, false) if none can be determined.
	Info(v any, cfg Config) (*typeinfo.Info, bool)

	// Derives reports whether child is ancestor itself or a descendant of
	// it. The query is total: unrelated or nil descriptors yield false,
	// never an error.
	Derives(child, ancestor *typeinfo.Info, cfg Config) bool
}
