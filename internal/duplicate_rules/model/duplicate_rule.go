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

package model

// AttributeTreatment declares how a set of differing attributes is tolerated
// by a duplicate rule. DIFFERENT accepts any difference on its attributes,
// APPROXIMATED additionally requires the values to be close matches.
type AttributeTreatment struct {
	TreatmentId string   `json:"treatment_id,omitempty"`
	Type        string   `json:"type"`
	Attributes  []string `json:"attributes"`
}

// DuplicateRule describes one duplicate detection rule over the checked attributes.
type DuplicateRule struct {
	RuleId              string               `json:"rule_id"`
	Name                string               `json:"name"`
	Code                string               `json:"code"`
	Description         string               `json:"description,omitempty"`
	CheckedAttributes   []string             `json:"checked_attributes"`
	NbFilledAttributes  int                  `json:"nb_filled_attributes"`
	NbEqualAttributes   int                  `json:"nb_equal_attributes"`
	NbMissingAttributes int                  `json:"nb_missing_attributes"`
	AttributeTreatments []AttributeTreatment `json:"attribute_treatments,omitempty"`
	Priority            int64                `json:"priority"`
	Active              bool                 `json:"active"`
	Daemon              bool                 `json:"daemon"`
	CreatedAt           int64                `json:"created_at,omitempty"`
	UpdatedAt           int64                `json:"updated_at,omitempty"`
}

// DuplicateRuleRequest is the request payload for creating a rule.
type DuplicateRuleRequest struct {
	Name                string               `json:"name"`
	Code                string               `json:"code"`
	Description         string               `json:"description,omitempty"`
	CheckedAttributes   []string             `json:"checked_attributes"`
	NbFilledAttributes  int                  `json:"nb_filled_attributes"`
	NbEqualAttributes   int                  `json:"nb_equal_attributes"`
	NbMissingAttributes int                  `json:"nb_missing_attributes"`
	AttributeTreatments []AttributeTreatment `json:"attribute_treatments,omitempty"`
	Priority            int64                `json:"priority"`
	Active              bool                 `json:"active"`
	Daemon              bool                 `json:"daemon"`
}

// DuplicateRuleListResponse wraps the active rule set ordered by priority.
type DuplicateRuleListResponse struct {
	TotalResults int             `json:"total_results"`
	Rules        []DuplicateRule `json:"rules"`
}
