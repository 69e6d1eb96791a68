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

	"github.com/openiam/identity-registry-service/internal/identity/model"
	"github.com/openiam/identity-registry-service/internal/identity/provider"
	"github.com/openiam/identity-registry-service/internal/system/authn"
	"github.com/openiam/identity-registry-service/internal/system/security"
	"github.com/openiam/identity-registry-service/internal/system/utils"
)

type IdentityHandler struct{}

func NewIdentityHandler() *IdentityHandler {
	return &IdentityHandler{}
}

// AdjudicateAttributeWrite handles a batch of proposed attribute writes for one identity.
func (ih *IdentityHandler) AdjudicateAttributeWrite(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "identities:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	identityId := r.PathValue("identityId")
	var request model.AttributeWriteRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	identityService := provider.NewIdentityProvider().GetIdentityService()
	response, err := identityService.AdjudicateAttributeWrite(authn.GetUserIDFromRequest(r), identityId, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, response)
}

// GetIdentityAttributes handles fetching the stored view of one identity.
func (ih *IdentityHandler) GetIdentityAttributes(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "identities:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	identityId := r.PathValue("identityId")
	identityService := provider.NewIdentityProvider().GetIdentityService()
	response, err := identityService.GetIdentityAttributes(identityId)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, response)
}
