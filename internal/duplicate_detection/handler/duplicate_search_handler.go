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

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openiam/identity-registry-service/internal/duplicate_detection/model"
	"github.com/openiam/identity-registry-service/internal/duplicate_detection/provider"
	"github.com/openiam/identity-registry-service/internal/system/authn"
	"github.com/openiam/identity-registry-service/internal/system/security"
	"github.com/openiam/identity-registry-service/internal/system/utils"
)

type DuplicateSearchHandler struct{}

func NewDuplicateSearchHandler() *DuplicateSearchHandler {
	return &DuplicateSearchHandler{}
}

// SearchDuplicates handles probing the registry with a candidate record.
func (dsh *DuplicateSearchHandler) SearchDuplicates(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicates:search"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.DuplicateSearchRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	detectionService := provider.NewDuplicateDetectionProvider().GetDuplicateDetectionService()
	response, err := detectionService.SearchDuplicates(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

// EvaluateDuplicatePair handles evaluating two registered identities against
// one named rule or all active rules.
func (dsh *DuplicateSearchHandler) EvaluateDuplicatePair(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicates:search"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.DuplicatePairRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	detectionService := provider.NewDuplicateDetectionProvider().GetDuplicateDetectionService()
	response, err := detectionService.EvaluateIdentityPair(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, response)
}
