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

	"github.com/openiam/identity-registry-service/internal/certification/model"
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/database/scripts"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/spf13/cast"
)

func AddCertificationMapping(mapping model.CertificationMapping) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for adding certification mapping",
		}, err)
	}
	defer dbClient.Close()

	dbType := provider.NewDBProvider().GetDBType()
	_, err = dbClient.ExecuteQuery(scripts.InsertCertificationProcess[dbType], mapping.ProcessCode, mapping.ProcessName)
	if err == nil {
		_, err = dbClient.ExecuteQuery(scripts.InsertCertificationMapping[dbType], mapping.MappingId,
			mapping.ProcessCode, mapping.AttributeKey, mapping.Level, true)
	}
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding certification mapping for process: %s and attribute: %s",
			mapping.ProcessCode, mapping.AttributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.ADD_CERTIFICATION_MAPPING.Code,
			Message:     errors.ADD_CERTIFICATION_MAPPING.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Certification mapping added for process: %s and attribute: %s",
		mapping.ProcessCode, mapping.AttributeKey))
	return nil
}

// GetCertificationMapping returns the active mapping for the pair, or nil when the pair is unmapped.
func GetCertificationMapping(processCode, attributeKey string) (*model.CertificationMapping, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching certification mapping",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetCertificationMapping[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, processCode, attributeKey)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching certification mapping for process: %s and attribute: %s",
			processCode, attributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.FETCH_CERTIFICATION_MAPPINGS.Code,
			Message:     errors.FETCH_CERTIFICATION_MAPPINGS.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	mapping := mapRowToCertificationMapping(results[0])
	return &mapping, nil
}

func GetCertificationMappings() ([]model.CertificationMapping, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching certification mappings",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetCertificationMappings[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Error occurred while fetching certification mappings"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.FETCH_CERTIFICATION_MAPPINGS.Code,
			Message:     errors.FETCH_CERTIFICATION_MAPPINGS.Message,
			Description: errorMsg,
		}, err)
	}

	mappings := make([]model.CertificationMapping, 0, len(results))
	for _, row := range results {
		mappings = append(mappings, mapRowToCertificationMapping(row))
	}
	return mappings, nil
}

func DeactivateCertificationMapping(processCode, attributeKey string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for deactivating certification mapping",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.DeactivateCertificationMapping[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, processCode, attributeKey)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while deactivating certification mapping for process: %s and attribute: %s",
			processCode, attributeKey)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Certification mapping deactivated for process: %s and attribute: %s",
		processCode, attributeKey))
	return nil
}

// helper: convert DB row to model
func mapRowToCertificationMapping(row map[string]interface{}) model.CertificationMapping {
	return model.CertificationMapping{
		MappingId:    cast.ToString(row["mapping_id"]),
		ProcessCode:  cast.ToString(row["process_code"]),
		ProcessName:  cast.ToString(row["label"]),
		AttributeKey: cast.ToString(row["attribute_key"]),
		Level:        cast.ToInt64(row["level"]),
	}
}
