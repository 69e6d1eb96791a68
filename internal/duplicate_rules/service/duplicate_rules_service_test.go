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

	"github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	errors2 "github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func validRule() model.DuplicateRule {
	return model.DuplicateRule{
		Name:                "Same person, one typo",
		Code:                "strict_match",
		CheckedAttributes:   []string{"last_name", "first_name", "birth_date", "birth_place"},
		NbFilledAttributes:  3,
		NbEqualAttributes:   2,
		NbMissingAttributes: 1,
		AttributeTreatments: []model.AttributeTreatment{
			{Type: constants.TreatmentApproximated, Attributes: []string{"first_name"}},
		},
		Priority: 10,
		Active:   true,
	}
}

func TestValidateDuplicateRuleAcceptsConsistentRule(t *testing.T) {
	require.NoError(t, ValidateDuplicateRule(validRule()))
}

func TestValidateDuplicateRuleAcceptsRuleWithoutTreatments(t *testing.T) {

	rule := validRule()
	rule.AttributeTreatments = nil
	require.NoError(t, ValidateDuplicateRule(rule))
}

func TestValidateDuplicateRuleRejectsInconsistentRules(t *testing.T) {

	tests := []struct {
		name   string
		mutate func(r *model.DuplicateRule)
	}{
		{"empty code", func(r *model.DuplicateRule) { r.Code = "" }},
		{"empty name", func(r *model.DuplicateRule) { r.Name = " " }},
		{"no checked attributes", func(r *model.DuplicateRule) { r.CheckedAttributes = nil }},
		{"duplicated checked attribute", func(r *model.DuplicateRule) {
			r.CheckedAttributes = []string{"last_name", "last_name", "birth_date", "birth_place"}
		}},
		{"nb_filled above checked count", func(r *model.DuplicateRule) { r.NbFilledAttributes = 5 }},
		{"nb_filled below one", func(r *model.DuplicateRule) { r.NbFilledAttributes = 0 }},
		{"negative nb_equal", func(r *model.DuplicateRule) { r.NbEqualAttributes = -1 }},
		{"counts cover all checked attributes", func(r *model.DuplicateRule) {
			// equal + missing must leave room for at least one difference
			r.NbEqualAttributes = 3
			r.NbMissingAttributes = 1
		}},
		{"negative priority", func(r *model.DuplicateRule) { r.Priority = -1 }},
		{"unknown treatment type", func(r *model.DuplicateRule) {
			r.AttributeTreatments[0].Type = "FUZZY"
		}},
		{"treatment on unchecked attribute", func(r *model.DuplicateRule) {
			r.AttributeTreatments[0].Attributes = []string{"email"}
		}},
		{"treatment attribute count breaks the arithmetic", func(r *model.DuplicateRule) {
			r.AttributeTreatments[0].Attributes = []string{"first_name", "birth_place"}
		}},
		{"two treatments with the same attribute set", func(r *model.DuplicateRule) {
			r.AttributeTreatments = append(r.AttributeTreatments, model.AttributeTreatment{
				Type:       constants.TreatmentDifferent,
				Attributes: []string{"first_name"},
			})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rule := validRule()
			tc.mutate(&rule)
			err := ValidateDuplicateRule(rule)
			require.Error(t, err)
			var clientError *errors2.ClientError
			require.ErrorAs(t, err, &clientError)
			assert.Equal(t, errors2.DUPLICATE_RULE_INVALID.Code, clientError.ErrorMessage.Code)
		})
	}
}

func TestSortRulesByPriorityIsStable(t *testing.T) {

	rules := []model.DuplicateRule{
		{Code: "c", Priority: 20},
		{Code: "a", Priority: 10},
		{Code: "b", Priority: 10},
	}
	sortRulesByPriority(rules)

	assert.Equal(t, "a", rules[0].Code)
	assert.Equal(t, "b", rules[1].Code)
	assert.Equal(t, "c", rules[2].Code)
}

func TestTreatmentSetKeyIsOrderInsensitive(t *testing.T) {
	assert.Equal(t, treatmentSetKey([]string{"b", "a"}), treatmentSetKey([]string{"a", "b"}))
}

func TestGetDuplicateRuleServedFromCache(t *testing.T) {

	rule := validRule()
	rule.RuleId = "rule-1"
	rulesCache.Set(ruleCodeCacheKey(rule.Code), rule)
	defer rulesCache.Invalidate(ruleCodeCacheKey(rule.Code))

	// A cache hit never reaches the store, so no database is needed here.
	cached, err := GetDuplicateRulesService().GetDuplicateRule(rule.Code)
	require.NoError(t, err)
	assert.Equal(t, rule, cached)
}
