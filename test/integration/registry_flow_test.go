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

package integration

import (
	"testing"

	"github.com/google/uuid"
	schemamodel "github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	schemaservice "github.com/openiam/identity-registry-service/internal/attribute_schema/service"
	certmodel "github.com/openiam/identity-registry-service/internal/certification/model"
	certservice "github.com/openiam/identity-registry-service/internal/certification/service"
	detectionmodel "github.com/openiam/identity-registry-service/internal/duplicate_detection/model"
	detectionservice "github.com/openiam/identity-registry-service/internal/duplicate_detection/service"
	rulesmodel "github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	rulesservice "github.com/openiam/identity-registry-service/internal/duplicate_rules/service"
	identitymodel "github.com/openiam/identity-registry-service/internal/identity/model"
	identityservice "github.com/openiam/identity-registry-service/internal/identity/service"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/stretchr/testify/require"
)

const testInitiator = "admin"

func addDefinition(t *testing.T, request schemamodel.AttributeDefinitionRequest) {
	t.Helper()
	_, err := schemaservice.GetAttributeSchemaService().CreateAttributeDefinition(testInitiator, request)
	require.NoError(t, err, "Failed to add attribute definition %s", request.AttributeKey)
}

func Test_AttributeTrustResolution(t *testing.T) {

	identityId := uuid.New().String()
	registry := identityservice.GetIdentityService()

	t.Run("Pre-requisite: Add_attribute_catalogue", func(t *testing.T) {
		addDefinition(t, schemamodel.AttributeDefinitionRequest{
			AttributeKey:         "last_name",
			DisplayName:          "Last name",
			ValueType:            constants.ValueTypeString,
			Pivot:                true,
			MandatoryForCreation: true,
			Weight:               10,
		})
		addDefinition(t, schemamodel.AttributeDefinitionRequest{
			AttributeKey: "first_name",
			DisplayName:  "First name",
			ValueType:    constants.ValueTypeString,
			Pivot:        true,
			Weight:       5,
		})
		addDefinition(t, schemamodel.AttributeDefinitionRequest{
			AttributeKey: "birth_date",
			DisplayName:  "Birth date",
			ValueType:    constants.ValueTypeDate,
			Certifiable:  true,
			Pivot:        true,
			Weight:       20,
		})
	})

	t.Run("Pre-requisite: Add_certification_mapping", func(t *testing.T) {
		_, err := certservice.GetCertificationService().CreateCertificationMapping(testInitiator,
			certmodel.CertificationMappingRequest{
				ProcessCode:  "passport_check",
				ProcessName:  "Passport verification",
				AttributeKey: "birth_date",
				Level:        3,
			})
		require.NoError(t, err, "Failed to add certification mapping")
	})

	t.Run("Reject_creation_without_mandatory_attributes", func(t *testing.T) {
		_, err := registry.AdjudicateAttributeWrite(testInitiator, uuid.New().String(),
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "first_name", Value: "Martine"},
				},
			})
		require.Error(t, err, "Expected creation without last_name to be rejected")
	})

	t.Run("Create_identity_with_certified_birth_date", func(t *testing.T) {
		response, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "last_name", Value: "Dupont"},
					{AttributeKey: "first_name", Value: "Martine"},
					{AttributeKey: "birth_date", Value: "1990-04-12", ProcessCode: "passport_check"},
				},
			})
		require.NoError(t, err, "Failed to adjudicate the creation batch")
		require.Len(t, response.Results, 3)
		for _, result := range response.Results {
			require.Equal(t, "CREATED", result.Decision)
		}
		require.Equal(t, int64(35), response.QualityScore)
	})

	t.Run("Reject_write_below_certification_level", func(t *testing.T) {
		response, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "birth_date", Value: "1991-01-01"},
				},
			})
		require.NoError(t, err, "Losing writes must not fail the request")
		require.Equal(t, "REJECTED", response.Results[0].Decision)
		require.Equal(t, "INSUFFICIENT_CERTIFICATION_LEVEL", response.Results[0].Status)
	})

	t.Run("Replay_of_identical_value_is_a_no_change", func(t *testing.T) {
		response, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "first_name", Value: "Martine"},
				},
			})
		require.NoError(t, err)
		require.Equal(t, "NO_CHANGE", response.Results[0].Decision)
		require.Equal(t, "NOT_UPDATED", response.Results[0].Status)
	})

	t.Run("Blank_value_removes_optional_attribute", func(t *testing.T) {
		response, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "first_name", Value: ""},
				},
			})
		require.NoError(t, err)
		require.Equal(t, "REMOVED", response.Results[0].Decision)
		require.Equal(t, int64(30), response.QualityScore)
	})

	t.Run("Blank_value_cannot_remove_mandatory_attribute", func(t *testing.T) {
		response, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "last_name", Value: ""},
				},
			})
		require.NoError(t, err)
		require.Equal(t, "REJECTED", response.Results[0].Decision)
		require.Equal(t, "NOT_REMOVED", response.Results[0].Status)
	})

	t.Run("Get_identity_attributes", func(t *testing.T) {
		view, err := registry.GetIdentityAttributes(identityId)
		require.NoError(t, err, "Failed to fetch the identity")
		require.Equal(t, constants.DuplicateStateUnflagged, view.DuplicateState)
		require.Len(t, view.Attributes, 2)
		require.Equal(t, int64(30), view.QualityScore)
	})
}

func Test_DuplicateRuleEvaluation(t *testing.T) {

	registry := identityservice.GetIdentityService()
	rules := rulesservice.GetDuplicateRulesService()
	detection := detectionservice.GetDuplicateDetectionService()

	identityIdA := uuid.New().String()
	identityIdB := uuid.New().String()
	ruleCode := "moreau_approx_first_name"

	writeIdentity := func(t *testing.T, identityId, lastName, firstName, birthDate string) {
		t.Helper()
		_, err := registry.AdjudicateAttributeWrite(testInitiator, identityId,
			identitymodel.AttributeWriteRequest{
				Attributes: []identitymodel.ProposedAttributeWrite{
					{AttributeKey: "last_name", Value: lastName},
					{AttributeKey: "first_name", Value: firstName},
					{AttributeKey: "birth_date", Value: birthDate},
				},
			})
		require.NoError(t, err, "Failed to write identity %s", identityId)
	}

	t.Run("Pre-requisite: Add_identities", func(t *testing.T) {
		writeIdentity(t, identityIdA, "Moreau", "Camille", "1984-11-02")
		writeIdentity(t, identityIdB, "Moreau", "Camilla", "1984-11-02")
	})

	t.Run("Add_duplicate_rule", func(t *testing.T) {
		_, err := rules.CreateDuplicateRule(testInitiator, rulesmodel.DuplicateRuleRequest{
			Name:               "Approximate first name",
			Code:               ruleCode,
			CheckedAttributes:  []string{"last_name", "first_name", "birth_date"},
			NbFilledAttributes: 3,
			NbEqualAttributes:  2,
			AttributeTreatments: []rulesmodel.AttributeTreatment{
				{Type: constants.TreatmentApproximated, Attributes: []string{"first_name"}},
			},
			Priority: 1,
			Active:   true,
			Daemon:   true,
		})
		require.NoError(t, err, "Failed to add duplicate rule")
	})

	t.Run("Search_finds_the_close_match_only", func(t *testing.T) {
		// The probe equals identity A on all three attributes, so the rule
		// demanding exactly two equal attributes skips it and flags B.
		response, err := detection.SearchDuplicates(testInitiator, detectionmodel.DuplicateSearchRequest{
			Attributes: map[string]string{
				"last_name":  "Moreau",
				"first_name": "Camille",
				"birth_date": "1984-11-02",
			},
			Mode: constants.MatchModeAllMatches,
		})
		require.NoError(t, err, "Duplicate search failed")
		require.Equal(t, 1, response.TotalResults)
		require.Equal(t, identityIdB, response.Matches[0].IdentityId)
		require.Equal(t, ruleCode, response.Matches[0].RuleCode)
		require.NotNil(t, response.Matches[0].MatchedTreatment)
		require.Equal(t, constants.TreatmentApproximated, *response.Matches[0].MatchedTreatment)
	})

	t.Run("Search_scoped_to_a_named_rule", func(t *testing.T) {
		response, err := detection.SearchDuplicates(testInitiator, detectionmodel.DuplicateSearchRequest{
			Attributes: map[string]string{
				"last_name":  "Moreau",
				"first_name": "Camille",
				"birth_date": "1984-11-02",
			},
			Mode:     constants.MatchModeAllMatches,
			RuleCode: ruleCode,
		})
		require.NoError(t, err, "Named-rule search failed")
		require.Equal(t, 1, response.TotalResults)
		require.Equal(t, ruleCode, response.Matches[0].RuleCode)

		_, err = detection.SearchDuplicates(testInitiator, detectionmodel.DuplicateSearchRequest{
			Attributes: map[string]string{"last_name": "Moreau"},
			RuleCode:   "no_such_rule",
		})
		require.Error(t, err, "Expected an unknown rule code to be rejected")
	})

	t.Run("Evaluate_identity_pair", func(t *testing.T) {
		response, err := detection.EvaluateIdentityPair(testInitiator, detectionmodel.DuplicatePairRequest{
			IdentityIdA: identityIdA,
			IdentityIdB: identityIdB,
			RuleCode:    ruleCode,
		})
		require.NoError(t, err, "Failed to evaluate the identity pair")
		require.Len(t, response.Verdicts, 1)
		require.True(t, response.Verdicts[0].Matched)
		require.Equal(t, ruleCode, response.Verdicts[0].RuleCode)
		require.NotNil(t, response.Verdicts[0].MatchedTreatment)
		require.Equal(t, constants.TreatmentApproximated, *response.Verdicts[0].MatchedTreatment)

		_, err = detection.EvaluateIdentityPair(testInitiator, detectionmodel.DuplicatePairRequest{
			IdentityIdA: identityIdA,
			IdentityIdB: uuid.New().String(),
		})
		require.Error(t, err, "Expected an unknown identity to be rejected")
	})

	t.Run("Record_suspected_duplicate_pair", func(t *testing.T) {
		err := detection.RecordSuspectedDuplicate(identityIdA, identityIdB, ruleCode)
		require.NoError(t, err, "Failed to record the suspected pair")

		view, err := registry.GetIdentityAttributes(identityIdA)
		require.NoError(t, err)
		require.Equal(t, constants.DuplicateStateSuspected, view.DuplicateState)
	})

	t.Run("Deactivated_rule_is_not_evaluated", func(t *testing.T) {
		_, err := rules.PatchDuplicateRule(testInitiator, ruleCode, map[string]interface{}{
			"active": false,
		})
		require.NoError(t, err, "Failed to deactivate the rule")

		response, err := detection.SearchDuplicates(testInitiator, detectionmodel.DuplicateSearchRequest{
			Attributes: map[string]string{
				"last_name":  "Moreau",
				"first_name": "Camille",
				"birth_date": "1984-11-02",
			},
		})
		require.NoError(t, err)
		require.Equal(t, 0, response.TotalResults)

		// Naming the rule evaluates it as stored, deactivated or not.
		response, err = detection.SearchDuplicates(testInitiator, detectionmodel.DuplicateSearchRequest{
			Attributes: map[string]string{
				"last_name":  "Moreau",
				"first_name": "Camille",
				"birth_date": "1984-11-02",
			},
			RuleCode: ruleCode,
		})
		require.NoError(t, err)
		require.Equal(t, 1, response.TotalResults)
	})

	t.Run("Delete_duplicate_rule", func(t *testing.T) {
		err := rules.DeleteDuplicateRule(testInitiator, ruleCode)
		require.NoError(t, err, "Failed to delete the rule")

		_, err = rules.GetDuplicateRule(ruleCode)
		require.Error(t, err, "Expected the deleted rule to be gone")
	})
}
