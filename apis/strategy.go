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

// Strategy is a pluggable query step. A Resolver chains multiple strategies
// in order (e.g., Typed -> Binding -> Identity -> Walk); the first strategy
// that reports handled wins.
type Strategy interface {
	// TryInfo attempts to determine the descriptor of v's actual type.
	// It returns (info, true) if handled; otherwise (nil, false) to fall through.
	TryInfo(v any, cfg Config) (*typeinfo.Info, bool)

	// TryDerives attempts to answer whether child derives from ancestor.
	// It returns (answer, true) if handled; otherwise (false, false) to
	// fall through to the next strategy.
	TryDerives(child, ancestor *typeinfo.Info, cfg Config) (derives bool, handled bool)
}
