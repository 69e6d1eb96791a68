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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValue(t *testing.T) {

	assert.Equal(t, "eleonore", normalizeValue("Éléonore"))
	assert.Equal(t, "jean pierre", normalizeValue("  Jean   Pierre "))
	assert.Equal(t, "", normalizeValue("   "))
}

func TestValuesEqualIgnoresCaseAndDiacritics(t *testing.T) {

	assert.True(t, valuesEqual("Éléonore", "eleonore"))
	assert.True(t, valuesEqual("  DUPONT ", "dupont"))
	assert.False(t, valuesEqual("dupont", "dupond"))
}

func TestValuesApproximatelyEqual(t *testing.T) {

	// One edit on a seven letter name stays above the threshold.
	assert.True(t, valuesApproximatelyEqual("Martine", "Martina"))
	assert.True(t, valuesApproximatelyEqual("Dupont", "Dupond"))
	assert.False(t, valuesApproximatelyEqual("Martine", "Bernard"))
	// Short values leave no room for edits.
	assert.False(t, valuesApproximatelyEqual("Li", "Lu"))
}

func TestSimilarity(t *testing.T) {

	assert.InDelta(t, 1.0, similarity("dupont", "dupont"), 1e-9)
	assert.InDelta(t, 1.0, similarity("", ""), 1e-9)
	assert.InDelta(t, 0.0, similarity("abc", ""), 1e-9)
	// One substitution on six characters.
	assert.InDelta(t, 1.0-1.0/6.0, similarity("dupont", "dupond"), 1e-9)
}

func TestLevenshtein(t *testing.T) {

	assert.Equal(t, 0, levenshtein([]rune("abc"), []rune("abc")))
	assert.Equal(t, 1, levenshtein([]rune("abc"), []rune("abd")))
	assert.Equal(t, 3, levenshtein([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 4, levenshtein([]rune(""), []rune("abcd")))
}
