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

package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora/v4"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/tern-lang/tern/errors"
)

// MROLinearizationError

// MROLinearizationError reports that a class's inheritance hierarchy
// admits no consistent method resolution order. The class still carries
// a best-effort MRO, so member lookup keeps working.
type MROLinearizationError struct {
	Class *ClassType
}

var _ errors.UserError = MROLinearizationError{}
var _ errors.SecondaryError = MROLinearizationError{}

func (MROLinearizationError) IsUserError() {}

func (e MROLinearizationError) Error() string {
	return fmt.Sprintf(
		"cannot create a consistent method resolution order for class `%s`",
		e.Class.Details.Name,
	)
}

func (e MROLinearizationError) SecondaryError() string {
	baseNames := make([]string, 0, len(e.Class.Details.BaseClasses))
	for _, base := range e.Class.Details.BaseClasses {
		if baseClass, ok := base.(*ClassType); ok {
			baseNames = append(baseNames, baseClass.Details.Name)
			continue
		}
		baseNames = append(baseNames, base.String())
	}

	return fmt.Sprintf(
		"base classes `%s` are ordered inconsistently with their own inheritance hierarchies",
		strings.Join(baseNames, "`, `"),
	)
}

// UnknownMemberError

// UnknownMemberError reports a member access that no MRO entry of the
// class provides.
type UnknownMemberError struct {
	Class *ClassType
	Name  string
}

var _ errors.UserError = UnknownMemberError{}
var _ errors.SecondaryError = UnknownMemberError{}

func (UnknownMemberError) IsUserError() {}

func (e UnknownMemberError) Error() string {
	return fmt.Sprintf(
		"class `%s` has no member `%s`",
		e.Class.Details.Name,
		e.Name,
	)
}

func (e UnknownMemberError) SecondaryError() string {
	if closestMember := e.findClosestMember(); closestMember != "" {
		return fmt.Sprintf("did you mean `%s`?", closestMember)
	}
	return "unknown member"
}

// findClosestMember returns the member of the class (or an ancestor)
// with the smallest edit distance to the accessed name, ignoring
// candidates whose edits would amount to a complete replacement.
func (e UnknownMemberError) findClosestMember() (closestMember string) {
	nameRunes := []rune(e.Name)

	closestDistance := len(e.Name)

	memberNames := make([]string, 0)
	for memberName := range GetClassFieldsRecursive(e.Class) {
		memberNames = append(memberNames, memberName)
	}
	sort.Strings(memberNames)

	for _, memberName := range memberNames {
		distance := levenshtein.DistanceForStrings(
			nameRunes,
			[]rune(memberName),
			levenshtein.DefaultOptions,
		)

		if distance < closestDistance && distance < len(memberName) {
			closestMember = memberName
			closestDistance = distance
		}
	}

	return
}

// RenderError renders an algebra diagnostic for terminal output,
// coloring the primary message and appending the secondary message
// when the error provides one.
func RenderError(err error, useColor bool) string {
	var sb strings.Builder

	message := err.Error()
	if useColor {
		message = aurora.Colorize(
			message,
			aurora.RedFg|aurora.BrightFg|aurora.BoldFm,
		).String()
	}
	sb.WriteString("error: ")
	sb.WriteString(message)

	if secondaryError, ok := err.(errors.SecondaryError); ok {
		secondary := secondaryError.SecondaryError()
		if useColor {
			secondary = aurora.Colorize(
				secondary,
				aurora.YellowFg|aurora.BrightFg,
			).String()
		}
		sb.WriteString("\nnote: ")
		sb.WriteString(secondary)
	}

	return sb.String()
}
