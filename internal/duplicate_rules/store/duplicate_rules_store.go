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

package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	"github.com/openiam/identity-registry-service/internal/system/database/client"
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/database/scripts"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/spf13/cast"
)

// AddDuplicateRule inserts the rule with its checked attributes and
// treatments in one transaction.
func AddDuplicateRule(rule model.DuplicateRule) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for adding duplicate rule",
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_DUPLICATE_RULE.Code,
			Message:     errors.ADD_DUPLICATE_RULE.Message,
			Description: "Failed to begin transaction for adding duplicate rule",
		}, err)
	}

	dbType := provider.NewDBProvider().GetDBType()
	if _, err := tx.Exec(scripts.InsertDuplicateRule[dbType], rule.RuleId, rule.Name, rule.Code, rule.Description,
		rule.NbFilledAttributes, rule.NbEqualAttributes, rule.NbMissingAttributes, rule.Priority, rule.Active,
		rule.Daemon, rule.CreatedAt, rule.UpdatedAt); err != nil {
		tx.Rollback()
		return addRuleError(rule.Code, err)
	}

	for _, attributeKey := range rule.CheckedAttributes {
		if _, err := tx.Exec(scripts.InsertDuplicateRuleCheckedAttribute[dbType], rule.RuleId, attributeKey); err != nil {
			tx.Rollback()
			return addRuleError(rule.Code, err)
		}
	}

	for _, treatment := range rule.AttributeTreatments {
		if _, err := tx.Exec(scripts.InsertDuplicateRuleTreatment[dbType], treatment.TreatmentId, rule.RuleId,
			treatment.Type); err != nil {
			tx.Rollback()
			return addRuleError(rule.Code, err)
		}
		for _, attributeKey := range treatment.Attributes {
			if _, err := tx.Exec(scripts.InsertDuplicateRuleTreatmentAttribute[dbType], treatment.TreatmentId,
				attributeKey); err != nil {
				tx.Rollback()
				return addRuleError(rule.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return addRuleError(rule.Code, err)
	}

	logger.Info("Duplicate rule added: " + rule.Code)
	return nil
}

// GetDuplicateRuleByCode returns the rule with its checked attributes and
// treatments, or nil when no rule carries the code.
func GetDuplicateRuleByCode(code string) (*model.DuplicateRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching duplicate rule",
		}, err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	results, err := dbClient.ExecuteQuery(scripts.GetDuplicateRuleByCode[dbType], code)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching duplicate rule: %s", code)
		logger.Debug(errorMsg, log.Error(err))
		return nil, fetchRulesError(errorMsg, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	rule := mapRowToDuplicateRule(results[0])
	if err := loadRuleChildren(dbClient, dbType, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// GetActiveDuplicateRules returns the active rules ordered by ascending
// priority, each with its checked attributes and treatments.
func GetActiveDuplicateRules() ([]model.DuplicateRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching active duplicate rules",
		}, err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	results, err := dbClient.ExecuteQuery(scripts.GetActiveDuplicateRules[dbType])
	if err != nil {
		errorMsg := "Error occurred while fetching active duplicate rules"
		logger.Debug(errorMsg, log.Error(err))
		return nil, fetchRulesError(errorMsg, err)
	}

	rules := make([]model.DuplicateRule, 0, len(results))
	for _, row := range results {
		rule := mapRowToDuplicateRule(row)
		if err := loadRuleChildren(dbClient, dbType, &rule); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// PatchDuplicateRule updates the given columns of the rule row.
func PatchDuplicateRule(ruleId string, updates map[string]interface{}) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for patching duplicate rule",
		}, err)
	}
	defer dbClient.Close()

	setClauses := []string{}
	args := []interface{}{}
	argIndex := 1
	for key, value := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argIndex))
		args = append(args, value)
		argIndex++
	}
	args = append(args, ruleId)

	query := `UPDATE duplicate_rules SET ` + strings.Join(setClauses, ", ") +
		` WHERE rule_id = $` + strconv.Itoa(argIndex)

	_, err = dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while patching duplicate rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.UPDATE_DUPLICATE_RULE.Code,
			Message:     errors.UPDATE_DUPLICATE_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// DeleteDuplicateRule removes the rule and its children.
func DeleteDuplicateRule(ruleId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for deleting duplicate rule",
		}, err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	queries := []string{
		scripts.DeleteDuplicateRuleTreatmentAttributes[dbType],
		scripts.DeleteDuplicateRuleTreatments[dbType],
		scripts.DeleteDuplicateRuleCheckedAttributes[dbType],
		scripts.DeleteDuplicateRule[dbType],
	}
	for _, query := range queries {
		if _, err := dbClient.ExecuteQuery(query, ruleId); err != nil {
			errorMsg := fmt.Sprintf("Error occurred while deleting duplicate rule: %s", ruleId)
			logger.Debug(errorMsg, log.Error(err))
			return errors.NewServerError(errors.ErrorMessage{
				Code:        errors.EXECUTE_QUERY.Code,
				Message:     errors.EXECUTE_QUERY.Message,
				Description: errorMsg,
			}, err)
		}
	}

	logger.Info("Duplicate rule deleted: " + ruleId)
	return nil
}

func loadRuleChildren(dbClient client.DBClientInterface, dbType string, rule *model.DuplicateRule) error {

	checkedRows, err := dbClient.ExecuteQuery(scripts.GetDuplicateRuleCheckedAttributes[dbType], rule.RuleId)
	if err != nil {
		return fetchRulesError(fmt.Sprintf("Error fetching checked attributes of rule: %s", rule.Code), err)
	}
	rule.CheckedAttributes = make([]string, 0, len(checkedRows))
	for _, row := range checkedRows {
		rule.CheckedAttributes = append(rule.CheckedAttributes, cast.ToString(row["attribute_key"]))
	}

	treatmentRows, err := dbClient.ExecuteQuery(scripts.GetDuplicateRuleTreatments[dbType], rule.RuleId)
	if err != nil {
		return fetchRulesError(fmt.Sprintf("Error fetching treatments of rule: %s", rule.Code), err)
	}
	rule.AttributeTreatments = make([]model.AttributeTreatment, 0, len(treatmentRows))
	for _, row := range treatmentRows {
		treatment := model.AttributeTreatment{
			TreatmentId: cast.ToString(row["treatment_id"]),
			Type:        cast.ToString(row["treatment_type"]),
		}
		attributeRows, err := dbClient.ExecuteQuery(scripts.GetDuplicateRuleTreatmentAttributes[dbType],
			treatment.TreatmentId)
		if err != nil {
			return fetchRulesError(fmt.Sprintf("Error fetching treatment attributes of rule: %s", rule.Code), err)
		}
		treatment.Attributes = make([]string, 0, len(attributeRows))
		for _, attributeRow := range attributeRows {
			treatment.Attributes = append(treatment.Attributes, cast.ToString(attributeRow["attribute_key"]))
		}
		rule.AttributeTreatments = append(rule.AttributeTreatments, treatment)
	}
	return nil
}

// helper: convert DB row to model
func mapRowToDuplicateRule(row map[string]interface{}) model.DuplicateRule {
	return model.DuplicateRule{
		RuleId:              cast.ToString(row["rule_id"]),
		Name:                cast.ToString(row["name"]),
		Code:                cast.ToString(row["code"]),
		Description:         cast.ToString(row["description"]),
		NbFilledAttributes:  cast.ToInt(row["nb_filled_attributes"]),
		NbEqualAttributes:   cast.ToInt(row["nb_equal_attributes"]),
		NbMissingAttributes: cast.ToInt(row["nb_missing_attributes"]),
		Priority:            cast.ToInt64(row["priority"]),
		Active:              cast.ToBool(row["active"]),
		Daemon:              cast.ToBool(row["daemon"]),
		CreatedAt:           cast.ToInt64(row["created_at"]),
		UpdatedAt:           cast.ToInt64(row["updated_at"]),
	}
}

func addRuleError(code string, err error) error {
	return errors.NewServerError(errors.ErrorMessage{
		Code:        errors.ADD_DUPLICATE_RULE.Code,
		Message:     errors.ADD_DUPLICATE_RULE.Message,
		Description: fmt.Sprintf("Failed to insert duplicate rule: %s", code),
	}, err)
}

func fetchRulesError(description string, err error) error {
	return errors.NewServerError(errors.ErrorMessage{
		Code:        errors.FETCH_DUPLICATE_RULES.Code,
		Message:     errors.FETCH_DUPLICATE_RULES.Message,
		Description: description,
	}, err)
}
