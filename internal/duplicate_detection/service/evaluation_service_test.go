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

	rulesmodel "github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

// exactRule matches when all three checked attributes are equal.
func exactRule() rulesmodel.DuplicateRule {
	return rulesmodel.DuplicateRule{
		Code:                "exact",
		CheckedAttributes:   []string{"last_name", "first_name", "birth_date"},
		NbFilledAttributes:  3,
		NbEqualAttributes:   3,
		NbMissingAttributes: 0,
		Priority:            1,
		Active:              true,
	}
}

// typoRule tolerates a close-match first name when the rest is equal.
func typoRule() rulesmodel.DuplicateRule {
	return rulesmodel.DuplicateRule{
		Code:                "typo_first_name",
		CheckedAttributes:   []string{"last_name", "first_name", "birth_date"},
		NbFilledAttributes:  3,
		NbEqualAttributes:   2,
		NbMissingAttributes: 0,
		AttributeTreatments: []rulesmodel.AttributeTreatment{
			{Type: constants.TreatmentApproximated, Attributes: []string{"first_name"}},
		},
		Priority: 2,
		Active:   true,
	}
}

func record(lastName, firstName, birthDate string) map[string]string {
	return map[string]string{
		"last_name":  lastName,
		"first_name": firstName,
		"birth_date": birthDate,
	}
}

func TestEligible(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rule := exactRule()

	assert.True(t, engine.Eligible(rule, record("Dupont", "Martine", "1990-04-12")))
	assert.False(t, engine.Eligible(rule, record("Dupont", "", "1990-04-12")))
	assert.False(t, engine.Eligible(rule, record("Dupont", "   ", "1990-04-12")))
}

func TestEvaluatePairExactMatch(t *testing.T) {

	engine := GetDuplicateDetectionService()

	verdict := engine.EvaluatePair(exactRule(),
		record("Dupont", "Martine", "1990-04-12"),
		record("DUPONT", "martine", "1990-04-12"))
	assert.True(t, verdict.Matched)
	assert.Nil(t, verdict.MatchedTreatment)
}

func TestEvaluatePairRequiresExactEqualCount(t *testing.T) {

	engine := GetDuplicateDetectionService()

	// Two equal attributes out of three do not satisfy a rule demanding three.
	verdict := engine.EvaluatePair(exactRule(),
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Bernard", "1990-04-12"))
	assert.False(t, verdict.Matched)
}

func TestEvaluatePairApproximatedTreatment(t *testing.T) {

	engine := GetDuplicateDetectionService()

	// A one-letter typo in the first name is absorbed by the treatment.
	verdict := engine.EvaluatePair(typoRule(),
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martina", "1990-04-12"))
	require.True(t, verdict.Matched)
	require.NotNil(t, verdict.MatchedTreatment)
	assert.Equal(t, constants.TreatmentApproximated, *verdict.MatchedTreatment)

	// A completely different first name is a difference the treatment rejects.
	verdict = engine.EvaluatePair(typoRule(),
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Bernard", "1990-04-12"))
	assert.False(t, verdict.Matched)
}

func TestEvaluatePairDifferentTreatment(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rule := typoRule()
	rule.AttributeTreatments = []rulesmodel.AttributeTreatment{
		{Type: constants.TreatmentDifferent, Attributes: []string{"first_name"}},
	}

	// DIFFERENT accepts any value on its attributes.
	verdict := engine.EvaluatePair(rule,
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Bernard", "1990-04-12"))
	require.True(t, verdict.Matched)
	assert.Equal(t, constants.TreatmentDifferent, *verdict.MatchedTreatment)
}

func TestEvaluatePairTreatmentSetMustMatchExactly(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rule := rulesmodel.DuplicateRule{
		Code:                "two_diffs",
		CheckedAttributes:   []string{"last_name", "first_name", "birth_date", "birth_place"},
		NbFilledAttributes:  4,
		NbEqualAttributes:   2,
		NbMissingAttributes: 0,
		AttributeTreatments: []rulesmodel.AttributeTreatment{
			{Type: constants.TreatmentDifferent, Attributes: []string{"first_name", "birth_place"}},
		},
	}

	// The differing set {first_name, birth_place} equals the treatment set.
	verdict := engine.EvaluatePair(rule,
		map[string]string{"last_name": "Dupont", "first_name": "Martine", "birth_date": "1990-04-12", "birth_place": "Lyon"},
		map[string]string{"last_name": "Dupont", "first_name": "Bernard", "birth_date": "1990-04-12", "birth_place": "Nice"})
	assert.True(t, verdict.Matched)

	// A differing set {first_name} is smaller than the treatment set: no match,
	// and no match either through the equal count which is then exceeded.
	verdict = engine.EvaluatePair(rule,
		map[string]string{"last_name": "Dupont", "first_name": "Martine", "birth_date": "1990-04-12", "birth_place": "Lyon"},
		map[string]string{"last_name": "Dupont", "first_name": "Bernard", "birth_date": "1990-04-12", "birth_place": "Lyon"})
	assert.False(t, verdict.Matched)
}

func TestEvaluatePairMissingAllowance(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rule := rulesmodel.DuplicateRule{
		Code:                "missing_birth_date",
		CheckedAttributes:   []string{"last_name", "first_name", "birth_date"},
		NbFilledAttributes:  2,
		NbEqualAttributes:   2,
		NbMissingAttributes: 1,
	}

	// Missing birth date on one side stays within the allowance.
	verdict := engine.EvaluatePair(rule,
		record("Dupont", "Martine", ""),
		record("Dupont", "Martine", "1990-04-12"))
	assert.True(t, verdict.Matched)

	// A birth date present on both sides but different lands in the differing
	// bucket, which the missing allowance never absorbs.
	verdict = engine.EvaluatePair(rule,
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martine", "1991-05-13"))
	assert.False(t, verdict.Matched)

	// Without the allowance the missing-birth-date pair does not match.
	rule.NbMissingAttributes = 0
	rule.NbFilledAttributes = 3
	verdict = engine.EvaluatePair(rule,
		record("Dupont", "Martine", ""),
		record("Dupont", "Martine", "1990-04-12"))
	assert.False(t, verdict.Matched)
}

func TestEvaluatePairNoDifferenceWithTreatmentsDoesNotMatch(t *testing.T) {

	engine := GetDuplicateDetectionService()

	// The typo rule demands exactly two equal attributes plus one treated
	// difference; a fully equal pair does not fit it.
	verdict := engine.EvaluatePair(typoRule(),
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martine", "1990-04-12"))
	assert.False(t, verdict.Matched)
}

func TestFirstMatchHonoursPriorityOrder(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rules := []rulesmodel.DuplicateRule{exactRule(), typoRule()}

	verdict := engine.FirstMatch(rules,
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martine", "1990-04-12"))
	require.NotNil(t, verdict)
	assert.Equal(t, "exact", verdict.RuleCode)

	verdict = engine.FirstMatch(rules,
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martina", "1990-04-12"))
	require.NotNil(t, verdict)
	assert.Equal(t, "typo_first_name", verdict.RuleCode)

	verdict = engine.FirstMatch(rules,
		record("Dupont", "Martine", "1990-04-12"),
		record("Bernard", "Paul", "1980-01-01"))
	assert.Nil(t, verdict)
}

func TestEvaluateAllReturnsOneVerdictPerRule(t *testing.T) {

	engine := GetDuplicateDetectionService()
	rules := []rulesmodel.DuplicateRule{exactRule(), typoRule()}

	verdicts := engine.EvaluateAll(rules,
		record("Dupont", "Martine", "1990-04-12"),
		record("Dupont", "Martina", "1990-04-12"))
	require.Len(t, verdicts, 2)
	assert.False(t, verdicts[0].Matched)
	assert.True(t, verdicts[1].Matched)
}
