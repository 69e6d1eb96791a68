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

	"github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/database/scripts"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/spf13/cast"
)

func AddAttributeDefinition(attr model.AttributeDefinition) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for adding attribute definition",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.InsertAttributeDefinition[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, attr.AttributeKey, attr.DisplayName, attr.ValueType, attr.Certifiable,
		attr.Pivot, attr.MandatoryForCreation, attr.Weight, attr.ValidationPattern, attr.CommonSearchKeyName,
		attr.CreatedAt, attr.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding attribute definition: %s", attr.AttributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_ATTRIBUTE_DEFINITION.Code,
			Message:     errors.ADD_ATTRIBUTE_DEFINITION.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Attribute definition added: " + attr.AttributeKey)
	return nil
}

func GetAttributeDefinitions() ([]model.AttributeDefinition, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching attribute definitions",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetAttributeDefinitions[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Error occurred while fetching attribute definitions"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.FETCH_ATTRIBUTE_DEFINITIONS.Code,
			Message:     errors.FETCH_ATTRIBUTE_DEFINITIONS.Message,
			Description: errorMsg,
		}, err)
	}

	definitions := make([]model.AttributeDefinition, 0, len(results))
	for _, row := range results {
		definitions = append(definitions, mapRowToAttributeDefinition(row))
	}
	return definitions, nil
}

// GetAttributeDefinition returns the definition for the given key, or nil when the key is not catalogued.
func GetAttributeDefinition(attributeKey string) (*model.AttributeDefinition, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching attribute definition",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetAttributeDefinition[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, attributeKey)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching attribute definition: %s", attributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.FETCH_ATTRIBUTE_DEFINITIONS.Code,
			Message:     errors.FETCH_ATTRIBUTE_DEFINITIONS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	attr := mapRowToAttributeDefinition(results[0])
	return &attr, nil
}

func UpdateAttributeDefinition(attr model.AttributeDefinition) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for updating attribute definition",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.UpdateAttributeDefinition[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, attr.AttributeKey, attr.DisplayName, attr.ValueType, attr.Certifiable,
		attr.Pivot, attr.MandatoryForCreation, attr.Weight, attr.ValidationPattern, attr.CommonSearchKeyName,
		attr.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating attribute definition: %s", attr.AttributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Attribute definition updated: " + attr.AttributeKey)
	return nil
}

func DeleteAttributeDefinition(attributeKey string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for deleting attribute definition",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.DeleteAttributeDefinition[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, attributeKey)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while deleting attribute definition: %s", attributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Attribute definition deleted: " + attributeKey)
	return nil
}

// helper: convert DB row to model
func mapRowToAttributeDefinition(row map[string]interface{}) model.AttributeDefinition {
	return model.AttributeDefinition{
		AttributeKey:         cast.ToString(row["attribute_key"]),
		DisplayName:          cast.ToString(row["display_name"]),
		ValueType:            cast.ToString(row["value_type"]),
		Certifiable:          cast.ToBool(row["certifiable"]),
		Pivot:                cast.ToBool(row["pivot"]),
		MandatoryForCreation: cast.ToBool(row["mandatory_for_creation"]),
		Weight:               cast.ToInt64(row["weight"]),
		ValidationPattern:    cast.ToString(row["validation_pattern"]),
		CommonSearchKeyName:  cast.ToString(row["common_search_key_name"]),
		CreatedAt:            cast.ToInt64(row["created_at"]),
		UpdatedAt:            cast.ToInt64(row["updated_at"]),
	}
}
