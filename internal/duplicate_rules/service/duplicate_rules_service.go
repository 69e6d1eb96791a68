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
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	"github.com/openiam/identity-registry-service/internal/duplicate_rules/store"
	"github.com/openiam/identity-registry-service/internal/system/cache"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// activeRulesCacheKey holds the full active rule set under one cache entry so
// a refresh swaps the whole set atomically.
const activeRulesCacheKey = "active_rules"

var rulesCache = cache.NewCache(15 * time.Minute)

// ruleCodeCacheKey is the per-code entry for read-through rule lookups.
func ruleCodeCacheKey(code string) string {
	return "rule::" + code
}

// DuplicateRulesServiceInterface defines the duplicate rule catalogue operations.
type DuplicateRulesServiceInterface interface {
	CreateDuplicateRule(initiatorID string, request model.DuplicateRuleRequest) (model.DuplicateRule, error)
	GetDuplicateRule(code string) (model.DuplicateRule, error)
	GetActiveDuplicateRules() (model.DuplicateRuleListResponse, error)
	PatchDuplicateRule(initiatorID, code string, updates map[string]interface{}) (model.DuplicateRule, error)
	DeleteDuplicateRule(initiatorID, code string) error
	LoadActiveRules() ([]model.DuplicateRule, error)
	RefreshRules() error
}

// DuplicateRulesService is the default implementation of the DuplicateRulesServiceInterface.
type DuplicateRulesService struct{}

// GetDuplicateRulesService creates a new instance of DuplicateRulesService.
func GetDuplicateRulesService() DuplicateRulesServiceInterface {
	return &DuplicateRulesService{}
}

func (drs *DuplicateRulesService) CreateDuplicateRule(initiatorID string,
	request model.DuplicateRuleRequest) (model.DuplicateRule, error) {

	rule := ruleFromRequest(request)
	if err := ValidateDuplicateRule(rule); err != nil {
		return model.DuplicateRule{}, err
	}

	existing, err := store.GetDuplicateRuleByCode(rule.Code)
	if err != nil {
		return model.DuplicateRule{}, err
	}
	if existing != nil {
		return model.DuplicateRule{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.DUPLICATE_RULE_ALREADY_EXISTS.Code,
			Message:     errors.DUPLICATE_RULE_ALREADY_EXISTS.Message,
			Description: fmt.Sprintf("A duplicate rule already exists with code: %s", rule.Code),
		}, http.StatusConflict)
	}

	now := time.Now().Unix()
	rule.RuleId = uuid.New().String()
	rule.CreatedAt = now
	rule.UpdatedAt = now
	for i := range rule.AttributeTreatments {
		rule.AttributeTreatments[i].TreatmentId = uuid.New().String()
	}

	if err := store.AddDuplicateRule(rule); err != nil {
		return model.DuplicateRule{}, err
	}
	if err := drs.RefreshRules(); err != nil {
		return model.DuplicateRule{}, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.Code,
		TargetType:    log.TargetTypeDuplicateRule,
		ActionID:      log.ActionAddDuplicateRule,
	})
	return rule, nil
}

func (drs *DuplicateRulesService) GetDuplicateRule(code string) (model.DuplicateRule, error) {

	if cached, found := rulesCache.Get(ruleCodeCacheKey(code)); found {
		if rule, ok := cached.(model.DuplicateRule); ok {
			return rule, nil
		}
	}

	rule, err := store.GetDuplicateRuleByCode(code)
	if err != nil {
		return model.DuplicateRule{}, err
	}
	if rule == nil {
		return model.DuplicateRule{}, ruleNotFoundError(code)
	}
	rulesCache.Set(ruleCodeCacheKey(code), *rule)
	return *rule, nil
}

func (drs *DuplicateRulesService) GetActiveDuplicateRules() (model.DuplicateRuleListResponse, error) {

	rules, err := drs.LoadActiveRules()
	if err != nil {
		return model.DuplicateRuleListResponse{}, err
	}
	return model.DuplicateRuleListResponse{
		TotalResults: len(rules),
		Rules:        rules,
	}, nil
}

// PatchDuplicateRule updates the mutable fields of a rule. The matching
// thresholds and checked attributes are immutable; a rule whose matching
// semantics must change is replaced, not edited.
func (drs *DuplicateRulesService) PatchDuplicateRule(initiatorID, code string,
	updates map[string]interface{}) (model.DuplicateRule, error) {

	if len(updates) == 0 {
		return model.DuplicateRule{}, badRequestError("no fields provided to update")
	}
	for field := range updates {
		if !constants.AllowedFieldsForDuplicateRulePatch[field] {
			return model.DuplicateRule{}, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.ONLY_PARTIAL_UPDATE_POSSIBLE.Code,
				Message:     errors.ONLY_PARTIAL_UPDATE_POSSIBLE.Message,
				Description: fmt.Sprintf("Field %q cannot be updated on an existing duplicate rule", field),
			}, http.StatusBadRequest)
		}
	}

	existing, err := store.GetDuplicateRuleByCode(code)
	if err != nil {
		return model.DuplicateRule{}, err
	}
	if existing == nil {
		return model.DuplicateRule{}, ruleNotFoundError(code)
	}

	updates["updated_at"] = time.Now().Unix()
	if err := store.PatchDuplicateRule(existing.RuleId, updates); err != nil {
		return model.DuplicateRule{}, err
	}
	if err := drs.RefreshRules(); err != nil {
		return model.DuplicateRule{}, err
	}

	updated, err := store.GetDuplicateRuleByCode(code)
	if err != nil {
		return model.DuplicateRule{}, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      code,
		TargetType:    log.TargetTypeDuplicateRule,
		ActionID:      log.ActionUpdateDuplicateRule,
	})
	return *updated, nil
}

func (drs *DuplicateRulesService) DeleteDuplicateRule(initiatorID, code string) error {

	existing, err := store.GetDuplicateRuleByCode(code)
	if err != nil {
		return err
	}
	if existing == nil {
		return ruleNotFoundError(code)
	}

	if err := store.DeleteDuplicateRule(existing.RuleId); err != nil {
		return err
	}
	if err := drs.RefreshRules(); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      code,
		TargetType:    log.TargetTypeDuplicateRule,
		ActionID:      log.ActionDeleteDuplicateRule,
	})
	return nil
}

// LoadActiveRules returns the active rules ordered by ascending priority,
// serving from the cache when it holds a fresh rule set.
func (drs *DuplicateRulesService) LoadActiveRules() ([]model.DuplicateRule, error) {

	if cached, found := rulesCache.Get(activeRulesCacheKey); found {
		if rules, ok := cached.([]model.DuplicateRule); ok {
			return rules, nil
		}
	}

	rules, err := store.GetActiveDuplicateRules()
	if err != nil {
		return nil, err
	}
	sortRulesByPriority(rules)
	rulesCache.Set(activeRulesCacheKey, rules)
	return rules, nil
}

// RefreshRules reloads the active rule set and swaps the cache content,
// evicting every per-code entry along the way.
func (drs *DuplicateRulesService) RefreshRules() error {

	rules, err := store.GetActiveDuplicateRules()
	if err != nil {
		return err
	}
	sortRulesByPriority(rules)
	rulesCache.ReplaceAll(map[string]interface{}{activeRulesCacheKey: rules})

	log.GetLogger().Debug(fmt.Sprintf("Duplicate rule cache refreshed with %d active rules", len(rules)))
	return nil
}

// ValidateDuplicateRule checks the arithmetic consistency of a rule. The
// counts must leave room for at least one differing attribute, and every
// treatment must account for exactly the attributes that the equal and
// missing counts leave open.
func ValidateDuplicateRule(rule model.DuplicateRule) error {

	if strings.TrimSpace(rule.Code) == "" {
		return invalidRuleError("code must not be empty")
	}
	if strings.TrimSpace(rule.Name) == "" {
		return invalidRuleError("name must not be empty")
	}
	if len(rule.CheckedAttributes) == 0 {
		return invalidRuleError("checked_attributes must not be empty")
	}

	checked := make(map[string]bool, len(rule.CheckedAttributes))
	for _, attributeKey := range rule.CheckedAttributes {
		if checked[attributeKey] {
			return invalidRuleError(fmt.Sprintf("checked_attributes contains %q more than once", attributeKey))
		}
		checked[attributeKey] = true
	}

	if rule.NbFilledAttributes < 1 || rule.NbFilledAttributes > len(rule.CheckedAttributes) {
		return invalidRuleError("nb_filled_attributes must be between 1 and the number of checked attributes")
	}
	if rule.NbEqualAttributes < 0 || rule.NbMissingAttributes < 0 {
		return invalidRuleError("nb_equal_attributes and nb_missing_attributes must not be negative")
	}
	if rule.NbEqualAttributes+rule.NbMissingAttributes >= len(rule.CheckedAttributes) {
		return invalidRuleError(
			"nb_equal_attributes plus nb_missing_attributes must be less than the number of checked attributes")
	}
	if rule.Priority < 0 {
		return invalidRuleError("priority must not be negative")
	}

	seenTreatmentSets := make(map[string]bool, len(rule.AttributeTreatments))
	for _, treatment := range rule.AttributeTreatments {
		if !constants.AllowedTreatmentTypes[treatment.Type] {
			return invalidRuleError(fmt.Sprintf("treatment type must be DIFFERENT or APPROXIMATED but was: %s",
				treatment.Type))
		}
		if len(treatment.Attributes) == 0 {
			return invalidRuleError("a treatment must name at least one attribute")
		}
		for _, attributeKey := range treatment.Attributes {
			if !checked[attributeKey] {
				return invalidRuleError(fmt.Sprintf("treatment attribute %q is not a checked attribute", attributeKey))
			}
		}
		if rule.NbEqualAttributes+rule.NbMissingAttributes+len(treatment.Attributes) != len(rule.CheckedAttributes) {
			return invalidRuleError(
				"the counts of a treatment must cover the checked attributes exactly: " +
					"nb_equal + nb_missing + treatment attributes must equal the number of checked attributes")
		}
		setKey := treatmentSetKey(treatment.Attributes)
		if seenTreatmentSets[setKey] {
			return invalidRuleError("two treatments cover the same attribute set")
		}
		seenTreatmentSets[setKey] = true
	}
	return nil
}

func sortRulesByPriority(rules []model.DuplicateRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority < rules[j].Priority
	})
}

func treatmentSetKey(attributes []string) string {
	sorted := append([]string(nil), attributes...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func ruleFromRequest(request model.DuplicateRuleRequest) model.DuplicateRule {
	return model.DuplicateRule{
		Name:                request.Name,
		Code:                request.Code,
		Description:         request.Description,
		CheckedAttributes:   request.CheckedAttributes,
		NbFilledAttributes:  request.NbFilledAttributes,
		NbEqualAttributes:   request.NbEqualAttributes,
		NbMissingAttributes: request.NbMissingAttributes,
		AttributeTreatments: request.AttributeTreatments,
		Priority:            request.Priority,
		Active:              request.Active,
		Daemon:              request.Daemon,
	}
}

func invalidRuleError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.DUPLICATE_RULE_INVALID.Code,
		Message:     errors.DUPLICATE_RULE_INVALID.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func badRequestError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.BAD_REQUEST.Code,
		Message:     errors.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func ruleNotFoundError(code string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.DUPLICATE_RULE_NOT_FOUND.Code,
		Message:     errors.DUPLICATE_RULE_NOT_FOUND.Message,
		Description: fmt.Sprintf("No duplicate rule found for code: %s", code),
	}, http.StatusNotFound)
}
