/*
 * Tern - a static type checker for the Tern scripting language
 *
 * Copyright Tern Language Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

// ParameterCategory is assigned by the parser to each function parameter.
//
// A Simple parameter with an empty name acts as a separator:
// in a parameter list it marks the boundary between positional-only
// (or keyword-only, when it follows a VarArgList parameter) sections.
type ParameterCategory int

const (
	ParameterCategorySimple ParameterCategory = iota
	ParameterCategoryVarArgList
	ParameterCategoryVarArgDictionary
)

func (c ParameterCategory) Name() string {
	switch c {
	case ParameterCategorySimple:
		return "simple"
	case ParameterCategoryVarArgList:
		return "variadic positional"
	case ParameterCategoryVarArgDictionary:
		return "variadic keyword"
	}

	return "unknown"
}

func (c ParameterCategory) String() string {
	return c.Name()
}
