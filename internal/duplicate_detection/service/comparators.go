/*
 * Copyright (c) 2025, OpenIAM LLC. (http://www.openiam.com).
 *
 * OpenIAM LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// approximateMatchThreshold is the minimum similarity for two values to pass
// an APPROXIMATED treatment.
const approximateMatchThreshold = 0.8

var diacriticsRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeValue folds case, strips diacritics and collapses whitespace so
// that "Éléonore" and " eleonore " compare equal.
func normalizeValue(value string) string {

	stripped, _, err := transform.String(diacriticsRemover, value)
	if err != nil {
		stripped = value
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

func isBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

func valuesEqual(a, b string) bool {
	return normalizeValue(a) == normalizeValue(b)
}

// valuesApproximatelyEqual reports whether the normalized values are within
// the Levenshtein similarity threshold.
func valuesApproximatelyEqual(a, b string) bool {
	return similarity(normalizeValue(a), normalizeValue(b)) >= approximateMatchThreshold
}

// similarity maps the Levenshtein distance of two strings onto [0, 1], where
// 1 means equal. Two empty strings are fully similar.
func similarity(a, b string) float64 {

	aRunes := []rune(a)
	bRunes := []rune(b)
	longest := max(len(aRunes), len(bRunes))
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(aRunes, bRunes))/float64(longest)
}

func levenshtein(a, b []rune) int {

	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(b)+1)
	current := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		previous[j] = j
	}

	for i := 1; i <= len(a); i++ {
		current[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			current[j] = min(previous[j]+1, min(current[j-1]+1, previous[j-1]+cost))
		}
		previous, current = current, previous
	}
	return previous[len(b)]
}
