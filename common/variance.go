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

// Variance is the declared variance of a type parameter.
//
// VarianceAuto is used for type parameters whose variance is inferred
// from their use sites rather than declared.
type Variance int

const (
	VarianceUnknown Variance = iota
	VarianceInvariant
	VarianceCovariant
	VarianceContravariant
	VarianceAuto
)

func (v Variance) Name() string {
	switch v {
	case VarianceInvariant:
		return "invariant"
	case VarianceCovariant:
		return "covariant"
	case VarianceContravariant:
		return "contravariant"
	case VarianceAuto:
		return "inferred"
	}

	return "unknown"
}

func (v Variance) String() string {
	return v.Name()
}
