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

// MatchVerdict is the outcome of evaluating one rule against a record pair.
// MatchedTreatment names the treatment type that absorbed the differing
// attributes, when the match needed one.
type MatchVerdict struct {
	RuleCode         string  `json:"rule_code"`
	Matched          bool    `json:"matched"`
	MatchedTreatment *string `json:"matched_treatment,omitempty"`
}

// DuplicateSearchRequest probes the registry with a candidate record. An
// empty rule code evaluates the full active rule set; a named code scopes
// the search to that one rule.
type DuplicateSearchRequest struct {
	Attributes map[string]string `json:"attributes"`
	Mode       string            `json:"mode,omitempty"`
	RuleCode   string            `json:"rule_code,omitempty"`
}

// DuplicatePairRequest evaluates two registered identities against one named
// rule, or against every active rule when the code is empty.
type DuplicatePairRequest struct {
	IdentityIdA string `json:"identity_id_a"`
	IdentityIdB string `json:"identity_id_b"`
	RuleCode    string `json:"rule_code,omitempty"`
}

// DuplicatePairResponse carries one verdict per evaluated rule.
type DuplicatePairResponse struct {
	IdentityIdA string         `json:"identity_id_a"`
	IdentityIdB string         `json:"identity_id_b"`
	Verdicts    []MatchVerdict `json:"verdicts"`
}

// DuplicateMatch is one identity the probe record collided with.
type DuplicateMatch struct {
	IdentityId       string  `json:"identity_id"`
	RuleCode         string  `json:"rule_code"`
	MatchedTreatment *string `json:"matched_treatment,omitempty"`
}

// DuplicateSearchResponse lists the identities a probe record collided with.
type DuplicateSearchResponse struct {
	TotalResults int              `json:"total_results"`
	Matches      []DuplicateMatch `json:"matches"`
}
