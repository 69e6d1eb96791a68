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

	"github.com/openiam/identity-registry-service/internal/certification/model"
	"github.com/openiam/identity-registry-service/internal/certification/provider"
	"github.com/openiam/identity-registry-service/internal/system/authn"
	"github.com/openiam/identity-registry-service/internal/system/security"
	"github.com/openiam/identity-registry-service/internal/system/utils"
)

type CertificationHandler struct{}

func NewCertificationHandler() *CertificationHandler {
	return &CertificationHandler{}
}

// AddCertificationMapping handles adding a new (process, attribute) level mapping.
func (ch *CertificationHandler) AddCertificationMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "certification:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.CertificationMappingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	certificationService := provider.NewCertificationProvider().GetCertificationService()
	mapping, err := certificationService.CreateCertificationMapping(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, mapping)
}

// GetCertificationMappings handles fetching the active certification referential.
func (ch *CertificationHandler) GetCertificationMappings(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "certification:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	certificationService := provider.NewCertificationProvider().GetCertificationService()
	referential, err := certificationService.GetCertificationMappings()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, referential)
}

// UpdateCertificationMapping handles replacing the level of an active mapping.
func (ch *CertificationHandler) UpdateCertificationMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "certification:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.CertificationMappingRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}
	request.ProcessCode = r.PathValue("processCode")
	request.AttributeKey = r.PathValue("attributeKey")

	certificationService := provider.NewCertificationProvider().GetCertificationService()
	mapping, err := certificationService.UpdateCertificationMapping(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, mapping)
}

// DeleteCertificationMapping handles deactivating a mapping, reverting the pair to level 0.
func (ch *CertificationHandler) DeleteCertificationMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "certification:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	processCode := r.PathValue("processCode")
	attributeKey := r.PathValue("attributeKey")
	certificationService := provider.NewCertificationProvider().GetCertificationService()
	if err := certificationService.DeleteCertificationMapping(authn.GetUserIDFromRequest(r), processCode,
		attributeKey); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
