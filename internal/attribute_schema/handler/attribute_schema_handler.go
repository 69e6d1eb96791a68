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

	"github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	"github.com/openiam/identity-registry-service/internal/attribute_schema/provider"
	"github.com/openiam/identity-registry-service/internal/system/authn"
	"github.com/openiam/identity-registry-service/internal/system/security"
	"github.com/openiam/identity-registry-service/internal/system/utils"
)

type AttributeSchemaHandler struct{}

func NewAttributeSchemaHandler() *AttributeSchemaHandler {
	return &AttributeSchemaHandler{}
}

// AddAttributeDefinition handles adding a new attribute definition to the catalogue.
func (ash *AttributeSchemaHandler) AddAttributeDefinition(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "attribute-schema:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.AttributeDefinitionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	schemaService := provider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	definition, err := schemaService.CreateAttributeDefinition(authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, definition)
}

// GetAttributeDefinitions handles fetching the full attribute catalogue.
func (ash *AttributeSchemaHandler) GetAttributeDefinitions(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "attribute-schema:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	schemaService := provider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	catalogue, err := schemaService.GetAttributeDefinitions()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, catalogue)
}

// GetAttributeDefinition handles fetching a single attribute definition.
func (ash *AttributeSchemaHandler) GetAttributeDefinition(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "attribute-schema:read"); err != nil {
		utils.HandleError(w, err)
		return
	}

	attributeKey := r.PathValue("attributeKey")
	schemaService := provider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	definition, err := schemaService.GetAttributeDefinition(attributeKey)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, definition)
}

// UpdateAttributeDefinition handles replacing an attribute definition.
func (ash *AttributeSchemaHandler) UpdateAttributeDefinition(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "attribute-schema:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	attributeKey := r.PathValue("attributeKey")
	var request model.AttributeDefinitionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, utils.HandleDecodeError(err))
		return
	}

	schemaService := provider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	definition, err := schemaService.UpdateAttributeDefinition(authn.GetUserIDFromRequest(r), attributeKey, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, definition)
}

// DeleteAttributeDefinition handles removing an attribute definition from the catalogue.
func (ash *AttributeSchemaHandler) DeleteAttributeDefinition(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "attribute-schema:write"); err != nil {
		utils.HandleError(w, err)
		return
	}

	attributeKey := r.PathValue("attributeKey")
	schemaService := provider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	if err := schemaService.DeleteAttributeDefinition(authn.GetUserIDFromRequest(r), attributeKey); err != nil {
		utils.HandleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
