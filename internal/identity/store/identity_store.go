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
	"time"

	"github.com/google/uuid"
	"github.com/openiam/identity-registry-service/internal/identity/model"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/database/scripts"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/spf13/cast"
)

// EnsureIdentity inserts the identity record if it does not exist yet.
func EnsureIdentity(identityId string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for ensuring identity",
		}, err)
	}
	defer dbClient.Close()

	now := time.Now().Unix()
	query := scripts.InsertIdentity[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, identityId, constants.DuplicateStateUnflagged, now, now)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while ensuring identity: %s", identityId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetIdentity returns the identity record, or nil when no record exists.
func GetIdentity(identityId string) (*model.Identity, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching identity",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetIdentity[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, identityId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching identity: %s", identityId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	row := results[0]
	return &model.Identity{
		IdentityId:     cast.ToString(row["identity_id"]),
		DuplicateState: cast.ToString(row["duplicate_state"]),
		CreatedAt:      cast.ToInt64(row["created_at"]),
		UpdatedAt:      cast.ToInt64(row["updated_at"]),
	}, nil
}

// GetIdentityIds returns the ids of all identities that are not merged away.
func GetIdentityIds() ([]string, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for listing identities",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetIdentityIds[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Error occurred while listing identity ids"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	ids := make([]string, 0, len(results))
	for _, row := range results {
		ids = append(ids, cast.ToString(row["identity_id"]))
	}
	return ids, nil
}

func GetIdentityAttributes(identityId string) ([]model.AttributeValue, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for fetching identity attributes",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetIdentityAttributes[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, identityId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while fetching attributes of identity: %s", identityId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.FETCH_IDENTITY_ATTRIBUTES.Code,
			Message:     errors.FETCH_IDENTITY_ATTRIBUTES.Message,
			Description: errorMsg,
		}, err)
	}

	attributes := make([]model.AttributeValue, 0, len(results))
	for _, row := range results {
		attributes = append(attributes, mapRowToAttributeValue(row))
	}
	return attributes, nil
}

func UpsertIdentityAttribute(identityId string, attribute model.AttributeValue) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for upserting identity attribute",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.UpsertIdentityAttribute[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, identityId, attribute.AttributeKey, attribute.Value,
		attribute.ProcessCode, attribute.ProcessName, unixOrNil(attribute.CertificationDate),
		unixOrNil(attribute.ExpirationDate), attribute.UpdatedBy, time.Now().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while writing attribute %s of identity: %s",
			attribute.AttributeKey, identityId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.APPLY_ATTRIBUTE_DECISION.Code,
			Message:     errors.APPLY_ATTRIBUTE_DECISION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

func DeleteIdentityAttribute(identityId, attributeKey string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for deleting identity attribute",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.DeleteIdentityAttribute[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, identityId, attributeKey)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while removing attribute %s of identity: %s", attributeKey, identityId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.APPLY_ATTRIBUTE_DECISION.Code,
			Message:     errors.APPLY_ATTRIBUTE_DECISION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// AddAttributeCertificate appends one row to the certificate history. History
// rows are never updated or deleted.
func AddAttributeCertificate(identityId string, attribute model.AttributeValue) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for recording attribute certificate",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.InsertAttributeCertificate[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, uuid.New().String(), identityId, attribute.AttributeKey,
		attribute.ProcessCode, attribute.ProcessName, unixOrNil(attribute.CertificationDate),
		unixOrNil(attribute.ExpirationDate), time.Now().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while recording certificate for attribute %s of identity: %s",
			attribute.AttributeKey, identityId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.APPLY_ATTRIBUTE_DECISION.Code,
			Message:     errors.APPLY_ATTRIBUTE_DECISION.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// UpdateDuplicateState moves the identity to the given duplicate handling state.
func UpdateDuplicateState(identityId, state string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for updating duplicate state",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.UpdateIdentityDuplicateState[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, identityId, state, time.Now().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating duplicate state of identity: %s", identityId)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Identity %s moved to duplicate state %s", identityId, state))
	return nil
}

// helper: convert DB row to model
func mapRowToAttributeValue(row map[string]interface{}) model.AttributeValue {
	return model.AttributeValue{
		AttributeKey:      cast.ToString(row["attribute_key"]),
		Value:             cast.ToString(row["attribute_value"]),
		ProcessCode:       cast.ToString(row["process_code"]),
		ProcessName:       cast.ToString(row["process_name"]),
		CertificationDate: timeOrNil(row["certification_date"]),
		ExpirationDate:    timeOrNil(row["expiration_date"]),
		UpdatedBy:         cast.ToString(row["updated_by"]),
	}
}

func unixOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Unix()
}

func timeOrNil(raw interface{}) *time.Time {
	if raw == nil {
		return nil
	}
	unix := cast.ToInt64(raw)
	if unix == 0 {
		return nil
	}
	t := time.Unix(unix, 0).UTC()
	return &t
}
