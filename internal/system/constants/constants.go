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

package constants

const ApiBasePath = "/api/v1"
const AttributeSchemaApiPath = "attribute-schema"
const CertificationApiPath = "certification-mappings"
const DuplicateRulesApiPath = "duplicate-rules"
const IdentitiesApiPath = "identities"
const DuplicateSearchApiPath = "duplicates/search"
const DuplicateEvaluateApiPath = "duplicates/evaluate"

const DefaultQueueSize = 100

// Attribute value types
const (
	ValueTypeString  = "string"
	ValueTypeNumeric = "numeric"
	ValueTypeFile    = "file"
	ValueTypeDate    = "date"
)

var AllowedValueTypes = map[string]bool{
	ValueTypeString:  true,
	ValueTypeNumeric: true,
	ValueTypeFile:    true,
	ValueTypeDate:    true,
}

// Duplicate rule treatment types
const (
	TreatmentDifferent    = "DIFFERENT"
	TreatmentApproximated = "APPROXIMATED"
)

var AllowedTreatmentTypes = map[string]bool{
	TreatmentDifferent:    true,
	TreatmentApproximated: true,
}

// Duplicate handling states of an identity. Transitions are owned by the
// identity-merge workflow; the evaluation engine only emits verdicts.
const (
	DuplicateStateUnflagged = "UNFLAGGED"
	DuplicateStateSuspected = "SUSPECTED_DUPLICATE"
	DuplicateStateExcluded  = "EXCLUDED"
	DuplicateStateMerged    = "MERGED"
)

// Multi-rule evaluation modes for duplicate search
const (
	MatchModeFirstMatch = "FIRST_MATCH"
	MatchModeAllMatches = "ALL_MATCHES"
)

var AllowedFieldsForDuplicateRulePatch = map[string]bool{
	"name":        true,
	"description": true,
	"priority":    true,
	"active":      true,
	"daemon":      true,
}
