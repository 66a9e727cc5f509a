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

// ComputeMROLinearization computes the method resolution order of the
// class using the C3 merge algorithm and stores it in the class record.
// The first MRO entry is always the class itself; each base class's MRO
// appears partially specialized with the type arguments it was declared
// with.
//
// Returns false when the inheritance hierarchy admits no consistent
// linearization. The stored MRO is then a best-effort order: whenever
// no valid head exists, the head of the first non-empty merge list is
// consumed, so the merge always makes progress and member lookup keeps
// working.
func ComputeMROLinearization(class *ClassType) bool {
	details := class.Details

	filteredBases := filterMROBaseClasses(class)

	// The lists to merge: each base class's MRO, partially specialized
	// with that base's type arguments, plus the list of direct bases,
	// each partially specialized against the class itself.
	var classLists [][]Type

	for _, base := range filteredBases {
		baseClass, ok := base.(*ClassType)
		if !ok {
			classLists = append(classLists, []Type{base})
			continue
		}

		baseMRO := make([]Type, 0, len(baseClass.Details.MRO))
		for _, entry := range baseClass.Details.MRO {
			baseMRO = append(
				baseMRO,
				PartiallySpecializeType(entry, baseClass, nil),
			)
		}
		classLists = append(classLists, baseMRO)
	}

	if len(filteredBases) > 0 {
		baseList := make([]Type, 0, len(filteredBases))
		for _, base := range filteredBases {
			baseList = append(baseList, PartiallySpecializeType(base, class, nil))
		}
		classLists = append(classLists, baseList)
	}

	details.MRO = []Type{SelfSpecializeClass(class)}

	ok := true

	for {
		head, valid, exhausted := pickMROHead(classLists)
		if exhausted {
			break
		}
		if !valid {
			ok = false
		}

		appendToMRO(details, head)
		removeFromClassLists(classLists, head)
	}

	return ok
}

// filterMROBaseClasses removes a Generic base when the class is a
// protocol, or when a later base carries explicit type arguments.
// Generic then only restates type parameters whose variance the other
// base already declares.
func filterMROBaseClasses(class *ClassType) []Type {
	baseClasses := class.Details.BaseClasses

	var filtered []Type
	for i, base := range baseClasses {
		if baseClass, ok := base.(*ClassType); ok &&
			baseClass.IsBuiltIn("Generic") {

			if class.IsProtocol() {
				continue
			}

			redundant := false
			for _, later := range baseClasses[i+1:] {
				if laterClass, ok := later.(*ClassType); ok &&
					!laterClass.IsBuiltIn("Generic") &&
					laterClass.TypeArguments != nil &&
					laterClass.IsTypeArgumentExplicit {

					redundant = true
					break
				}
			}
			if redundant {
				continue
			}
		}

		filtered = append(filtered, base)
	}

	return filtered
}

// pickMROHead selects the next MRO entry: the head of some list that
// does not appear in the tail of any other list. When every head is
// blocked, the head of the first non-empty list is chosen for progress
// and valid is false. exhausted reports that all lists are empty.
func pickMROHead(classLists [][]Type) (head Type, valid bool, exhausted bool) {
	firstNonEmpty := -1

	for listIndex, list := range classLists {
		if len(list) == 0 {
			continue
		}
		if firstNonEmpty < 0 {
			firstNonEmpty = listIndex
		}

		candidate := list[0]

		candidateClass, isClass := candidate.(*ClassType)
		if !isClass {
			// An Unknown or Any base is never blocked.
			return candidate, true, false
		}

		blocked := false
		for _, other := range classLists {
			if isInTail(candidateClass, other) {
				blocked = true
				break
			}
		}
		if !blocked {
			return candidate, true, false
		}
	}

	if firstNonEmpty < 0 {
		return nil, false, true
	}

	return classLists[firstNonEmpty][0], false, false
}

func isInTail(searchClass *ClassType, list []Type) bool {
	if len(list) == 0 {
		return false
	}
	for _, entry := range list[1:] {
		if entryClass, ok := entry.(*ClassType); ok &&
			entryClass.SameGenericClass(searchClass) {

			return true
		}
	}
	return false
}

// appendToMRO adds the entry unless the MRO already contains the same
// generic class (or, for non-class entries, the same type).
func appendToMRO(details *ClassDetails, head Type) {
	headClass, isClass := head.(*ClassType)

	for _, existing := range details.MRO {
		if isClass {
			if existingClass, ok := existing.(*ClassType); ok &&
				existingClass.SameGenericClass(headClass) {

				return
			}
		} else if IsTypeSame(existing, head, TypeSameOptions{}) {
			return
		}
	}

	details.MRO = append(details.MRO, head)
}

// removeFromClassLists removes every occurrence of the chosen head from
// every merge list.
func removeFromClassLists(classLists [][]Type, head Type) {
	headClass, isClass := head.(*ClassType)

	for listIndex, list := range classLists {
		filtered := list[:0]
		for _, entry := range list {
			if isClass {
				if entryClass, ok := entry.(*ClassType); ok &&
					entryClass.SameGenericClass(headClass) {

					continue
				}
			} else if IsTypeSame(entry, head, TypeSameOptions{}) {
				continue
			}
			filtered = append(filtered, entry)
		}
		classLists[listIndex] = filtered
	}
}
