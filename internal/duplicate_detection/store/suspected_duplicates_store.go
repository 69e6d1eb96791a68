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
	"github.com/openiam/identity-registry-service/internal/system/database/provider"
	"github.com/openiam/identity-registry-service/internal/system/database/scripts"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// AddSuspectedDuplicate records a flagged pair. Re-recording an already known
// pair under the same rule is a no-op.
func AddSuspectedDuplicate(identityIdA, identityIdB, ruleCode string) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: "Error initializing DB client for recording suspected duplicate",
		}, err)
	}
	defer dbClient.Close()

	query := scripts.InsertSuspectedDuplicate[provider.NewDBProvider().GetDBType()]
	_, err = dbClient.ExecuteQuery(query, uuid.New().String(), identityIdA, identityIdB, ruleCode,
		time.Now().Unix())
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while recording suspected duplicate pair (%s, %s) under rule: %s",
			identityIdA, identityIdB, ruleCode)
		logger.Debug(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.EXECUTE_QUERY.Code,
			Message:     errors.EXECUTE_QUERY.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Suspected duplicate pair recorded: (%s, %s) under rule %s",
		identityIdA, identityIdB, ruleCode))
	return nil
}
