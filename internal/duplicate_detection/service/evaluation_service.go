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
	"fmt"
	"net/http"

	"github.com/openiam/identity-registry-service/internal/duplicate_detection/model"
	"github.com/openiam/identity-registry-service/internal/duplicate_detection/store"
	rulesmodel "github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	rulesprovider "github.com/openiam/identity-registry-service/internal/duplicate_rules/provider"
	identitymodel "github.com/openiam/identity-registry-service/internal/identity/model"
	identitystore "github.com/openiam/identity-registry-service/internal/identity/store"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// DuplicateDetectionServiceInterface defines the duplicate rule evaluation engine.
type DuplicateDetectionServiceInterface interface {
	Eligible(rule rulesmodel.DuplicateRule, attributes map[string]string) bool
	EvaluatePair(rule rulesmodel.DuplicateRule, candidate, existing map[string]string) model.MatchVerdict
	EvaluateAll(rules []rulesmodel.DuplicateRule, candidate, existing map[string]string) []model.MatchVerdict
	FirstMatch(rules []rulesmodel.DuplicateRule, candidate, existing map[string]string) *model.MatchVerdict
	SearchDuplicates(initiatorID string, request model.DuplicateSearchRequest) (model.DuplicateSearchResponse, error)
	EvaluateIdentityPair(initiatorID string, request model.DuplicatePairRequest) (model.DuplicatePairResponse, error)
	RecordSuspectedDuplicate(identityIdA, identityIdB, ruleCode string) error
}

// DuplicateDetectionService is the default implementation of the DuplicateDetectionServiceInterface.
type DuplicateDetectionService struct{}

// GetDuplicateDetectionService creates a new instance of DuplicateDetectionService.
func GetDuplicateDetectionService() DuplicateDetectionServiceInterface {
	return &DuplicateDetectionService{}
}

// Eligible reports whether the record fills enough of the rule's checked
// attributes to be worth comparing.
func (dds *DuplicateDetectionService) Eligible(rule rulesmodel.DuplicateRule,
	attributes map[string]string) bool {

	filled := 0
	for _, attributeKey := range rule.CheckedAttributes {
		if !isBlank(attributes[attributeKey]) {
			filled++
		}
	}
	return filled >= rule.NbFilledAttributes
}

// EvaluatePair buckets every checked attribute of the pair as equal, missing
// or differing, then matches the bucket counts against the rule. A pair
// matches when the equal count is hit exactly, the missing count stays within
// the allowance, and the differing attributes are exactly covered by one of
// the rule's treatments.
func (dds *DuplicateDetectionService) EvaluatePair(rule rulesmodel.DuplicateRule,
	candidate, existing map[string]string) model.MatchVerdict {

	verdict := model.MatchVerdict{RuleCode: rule.Code}
	if !dds.Eligible(rule, candidate) || !dds.Eligible(rule, existing) {
		return verdict
	}

	equal := 0
	missing := 0
	differing := make(map[string]bool)
	for _, attributeKey := range rule.CheckedAttributes {
		candidateValue := candidate[attributeKey]
		existingValue := existing[attributeKey]
		switch {
		case isBlank(candidateValue) || isBlank(existingValue):
			missing++
		case valuesEqual(candidateValue, existingValue):
			equal++
		default:
			differing[attributeKey] = true
		}
	}

	if equal != rule.NbEqualAttributes || missing > rule.NbMissingAttributes {
		return verdict
	}

	if len(differing) == 0 {
		verdict.Matched = len(rule.AttributeTreatments) == 0
		return verdict
	}

	for _, treatment := range rule.AttributeTreatments {
		if !sameAttributeSet(treatment.Attributes, differing) {
			continue
		}
		if treatment.Type == constants.TreatmentApproximated {
			if !approximatelyEqualOn(treatment.Attributes, candidate, existing) {
				continue
			}
		}
		treatmentType := treatment.Type
		verdict.Matched = true
		verdict.MatchedTreatment = &treatmentType
		return verdict
	}
	return verdict
}

// EvaluateAll evaluates every rule against the pair, in priority order.
func (dds *DuplicateDetectionService) EvaluateAll(rules []rulesmodel.DuplicateRule,
	candidate, existing map[string]string) []model.MatchVerdict {

	verdicts := make([]model.MatchVerdict, 0, len(rules))
	for _, rule := range rules {
		verdicts = append(verdicts, dds.EvaluatePair(rule, candidate, existing))
	}
	return verdicts
}

// FirstMatch returns the verdict of the highest-priority matching rule, or
// nil when no rule matches.
func (dds *DuplicateDetectionService) FirstMatch(rules []rulesmodel.DuplicateRule,
	candidate, existing map[string]string) *model.MatchVerdict {

	for _, rule := range rules {
		verdict := dds.EvaluatePair(rule, candidate, existing)
		if verdict.Matched {
			return &verdict
		}
	}
	return nil
}

// SearchDuplicates probes the registry with a candidate record and returns
// the identities it collides with, under the active rules or under one
// named rule.
func (dds *DuplicateDetectionService) SearchDuplicates(initiatorID string,
	request model.DuplicateSearchRequest) (model.DuplicateSearchResponse, error) {

	if len(request.Attributes) == 0 {
		return model.DuplicateSearchResponse{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "attributes must not be empty",
		}, http.StatusBadRequest)
	}
	mode := request.Mode
	if mode == "" {
		mode = constants.MatchModeFirstMatch
	}
	if mode != constants.MatchModeFirstMatch && mode != constants.MatchModeAllMatches {
		return model.DuplicateSearchResponse{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: fmt.Sprintf("mode must be FIRST_MATCH or ALL_MATCHES but was: %s", request.Mode),
		}, http.StatusBadRequest)
	}

	rules, err := resolveRules(request.RuleCode)
	if err != nil {
		return model.DuplicateSearchResponse{}, err
	}

	identityIds, err := identitystore.GetIdentityIds()
	if err != nil {
		return model.DuplicateSearchResponse{}, err
	}

	matches := make([]model.DuplicateMatch, 0)
	for _, identityId := range identityIds {
		attributes, err := identitystore.GetIdentityAttributes(identityId)
		if err != nil {
			return model.DuplicateSearchResponse{}, err
		}
		existing := attributesAsMap(attributes)

		if mode == constants.MatchModeFirstMatch {
			if verdict := dds.FirstMatch(rules, request.Attributes, existing); verdict != nil {
				matches = append(matches, model.DuplicateMatch{
					IdentityId:       identityId,
					RuleCode:         verdict.RuleCode,
					MatchedTreatment: verdict.MatchedTreatment,
				})
			}
			continue
		}
		for _, verdict := range dds.EvaluateAll(rules, request.Attributes, existing) {
			if verdict.Matched {
				matches = append(matches, model.DuplicateMatch{
					IdentityId:       identityId,
					RuleCode:         verdict.RuleCode,
					MatchedTreatment: verdict.MatchedTreatment,
				})
			}
		}
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetType:    log.TargetTypeIdentity,
		ActionID:      log.ActionDuplicateSearch,
		Data:          map[string]interface{}{"matches": len(matches)},
	})

	return model.DuplicateSearchResponse{
		TotalResults: len(matches),
		Matches:      matches,
	}, nil
}

// EvaluateIdentityPair evaluates two registered identities against one named
// rule or the full active rule set and returns the per-rule verdicts. Naming
// a rule evaluates it as stored: the active and daemon flags only govern
// which rules participate in unscoped searches and background scans.
func (dds *DuplicateDetectionService) EvaluateIdentityPair(initiatorID string,
	request model.DuplicatePairRequest) (model.DuplicatePairResponse, error) {

	if request.IdentityIdA == "" || request.IdentityIdB == "" {
		return model.DuplicatePairResponse{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "identity_id_a and identity_id_b must not be empty",
		}, http.StatusBadRequest)
	}
	if request.IdentityIdA == request.IdentityIdB {
		return model.DuplicatePairResponse{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "identity_id_a and identity_id_b must name two distinct identities",
		}, http.StatusBadRequest)
	}

	candidate, err := loadIdentityRecord(request.IdentityIdA)
	if err != nil {
		return model.DuplicatePairResponse{}, err
	}
	existing, err := loadIdentityRecord(request.IdentityIdB)
	if err != nil {
		return model.DuplicatePairResponse{}, err
	}

	rules, err := resolveRules(request.RuleCode)
	if err != nil {
		return model.DuplicatePairResponse{}, err
	}
	verdicts := dds.EvaluateAll(rules, candidate, existing)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      request.IdentityIdA,
		TargetType:    log.TargetTypeIdentity,
		ActionID:      log.ActionDuplicateEvaluate,
		Data:          map[string]interface{}{"other_identity_id": request.IdentityIdB, "rules": len(rules)},
	})

	return model.DuplicatePairResponse{
		IdentityIdA: request.IdentityIdA,
		IdentityIdB: request.IdentityIdB,
		Verdicts:    verdicts,
	}, nil
}

// RecordSuspectedDuplicate persists the pair under the rule that flagged it
// and moves both identities to the suspected state.
func (dds *DuplicateDetectionService) RecordSuspectedDuplicate(identityIdA, identityIdB, ruleCode string) error {

	// Store pairs in a canonical order so (a, b) and (b, a) collapse.
	if identityIdB < identityIdA {
		identityIdA, identityIdB = identityIdB, identityIdA
	}

	if err := store.AddSuspectedDuplicate(identityIdA, identityIdB, ruleCode); err != nil {
		return err
	}
	if err := identitystore.UpdateDuplicateState(identityIdA, constants.DuplicateStateSuspected); err != nil {
		return err
	}
	return identitystore.UpdateDuplicateState(identityIdB, constants.DuplicateStateSuspected)
}

// resolveRules returns the rule set a request evaluates under: the named
// rule when a code is given, the active set otherwise.
func resolveRules(ruleCode string) ([]rulesmodel.DuplicateRule, error) {

	rulesService := rulesprovider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	if ruleCode == "" {
		return rulesService.LoadActiveRules()
	}
	rule, err := rulesService.GetDuplicateRule(ruleCode)
	if err != nil {
		return nil, err
	}
	return []rulesmodel.DuplicateRule{rule}, nil
}

func loadIdentityRecord(identityId string) (map[string]string, error) {

	identity, err := identitystore.GetIdentity(identityId)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.IDENTITY_NOT_FOUND.Code,
			Message:     errors.IDENTITY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No identity record found for id: %s", identityId),
		}, http.StatusNotFound)
	}
	attributes, err := identitystore.GetIdentityAttributes(identityId)
	if err != nil {
		return nil, err
	}
	return attributesAsMap(attributes), nil
}

func sameAttributeSet(attributes []string, differing map[string]bool) bool {

	if len(attributes) != len(differing) {
		return false
	}
	for _, attributeKey := range attributes {
		if !differing[attributeKey] {
			return false
		}
	}
	return true
}

func approximatelyEqualOn(attributes []string, candidate, existing map[string]string) bool {

	for _, attributeKey := range attributes {
		if !valuesApproximatelyEqual(candidate[attributeKey], existing[attributeKey]) {
			return false
		}
	}
	return true
}

func attributesAsMap(attributes []identitymodel.AttributeValue) map[string]string {

	values := make(map[string]string, len(attributes))
	for _, attribute := range attributes {
		values[attribute.AttributeKey] = attribute.Value
	}
	return values
}
