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

	"github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	"github.com/openiam/identity-registry-service/internal/duplicate_rules/provider"
	"github.com/openiam/identity-registry-service/internal/system/authn"
	"github.com/openiam/identity-registry-service/internal/system/security"
	"github.com/openiam/identity-registry-service/internal/system/utils"
)

type DuplicateRulesHandler struct{}

func NewDuplicateRulesHandler() *DuplicateRulesHandler {
	return &DuplicateRulesHandler{}
}

// AddDuplicateRule handles adding a new duplicate detection rule.
func (drh *DuplicateRulesHandler) AddDuplicateRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate-rules:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.DuplicateRuleRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	rulesService := provider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	rule, err := rulesService.CreateDuplicateRule(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, rule)
}

// GetDuplicateRules handles fetching the active rules ordered by priority.
func (drh *DuplicateRulesHandler) GetDuplicateRules(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate-rules:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	rulesService := provider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	rules, err := rulesService.GetActiveDuplicateRules()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rules)
}

// GetDuplicateRule handles fetching one rule by code.
func (drh *DuplicateRulesHandler) GetDuplicateRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate-rules:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	code := r.PathValue("code")
	rulesService := provider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	rule, err := rulesService.GetDuplicateRule(code)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rule)
}

// PatchDuplicateRule handles updating the mutable fields of a rule.
func (drh *DuplicateRulesHandler) PatchDuplicateRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate-rules:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	code := r.PathValue("code")
	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	rulesService := provider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	rule, err := rulesService.PatchDuplicateRule(authn.GetUserIDFromRequest(r), code, updates)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, rule)
}

// DeleteDuplicateRule handles removing a rule.
func (drh *DuplicateRulesHandler) DeleteDuplicateRule(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "duplicate-rules:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	code := r.PathValue("code")
	rulesService := provider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	if err := rulesService.DeleteDuplicateRule(authn.GetUserIDFromRequest(r), code); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
