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

package managers

import (
	"net/http"

	schemahandler "github.com/openiam/identity-registry-service/internal/attribute_schema/handler"
	certhandler "github.com/openiam/identity-registry-service/internal/certification/handler"
	detectionhandler "github.com/openiam/identity-registry-service/internal/duplicate_detection/handler"
	ruleshandler "github.com/openiam/identity-registry-service/internal/duplicate_rules/handler"
	healthhandler "github.com/openiam/identity-registry-service/internal/health_check/handler"
	identityhandler "github.com/openiam/identity-registry-service/internal/identity/handler"
	"github.com/openiam/identity-registry-service/internal/system/constants"
)

// ServiceManagerInterface registers the HTTP services of the registry.
type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

// ServiceManager is the default implementation of the ServiceManagerInterface.
type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

// RegisterServices mounts every handler of the registry under the API base path.
func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	healthHandler := healthhandler.NewHealthHandler()
	sm.mux.HandleFunc("GET /health", healthHandler.HandleHealth)
	sm.mux.HandleFunc("GET /ready", healthHandler.HandleReadiness)

	schemaHandler := schemahandler.NewAttributeSchemaHandler()
	schemaPath := apiBasePath + "/" + constants.AttributeSchemaApiPath
	sm.mux.HandleFunc("POST "+schemaPath, schemaHandler.AddAttributeDefinition)
	sm.mux.HandleFunc("GET "+schemaPath, schemaHandler.GetAttributeDefinitions)
	sm.mux.HandleFunc("GET "+schemaPath+"/{attributeKey}", schemaHandler.GetAttributeDefinition)
	sm.mux.HandleFunc("PUT "+schemaPath+"/{attributeKey}", schemaHandler.UpdateAttributeDefinition)
	sm.mux.HandleFunc("DELETE "+schemaPath+"/{attributeKey}", schemaHandler.DeleteAttributeDefinition)

	certificationHandler := certhandler.NewCertificationHandler()
	certificationPath := apiBasePath + "/" + constants.CertificationApiPath
	sm.mux.HandleFunc("POST "+certificationPath, certificationHandler.AddCertificationMapping)
	sm.mux.HandleFunc("GET "+certificationPath, certificationHandler.GetCertificationMappings)
	sm.mux.HandleFunc("PUT "+certificationPath+"/{processCode}/{attributeKey}",
		certificationHandler.UpdateCertificationMapping)
	sm.mux.HandleFunc("DELETE "+certificationPath+"/{processCode}/{attributeKey}",
		certificationHandler.DeleteCertificationMapping)

	rulesHandler := ruleshandler.NewDuplicateRulesHandler()
	rulesPath := apiBasePath + "/" + constants.DuplicateRulesApiPath
	sm.mux.HandleFunc("POST "+rulesPath, rulesHandler.AddDuplicateRule)
	sm.mux.HandleFunc("GET "+rulesPath, rulesHandler.GetDuplicateRules)
	sm.mux.HandleFunc("GET "+rulesPath+"/{code}", rulesHandler.GetDuplicateRule)
	sm.mux.HandleFunc("PATCH "+rulesPath+"/{code}", rulesHandler.PatchDuplicateRule)
	sm.mux.HandleFunc("DELETE "+rulesPath+"/{code}", rulesHandler.DeleteDuplicateRule)

	identityHandler := identityhandler.NewIdentityHandler()
	identitiesPath := apiBasePath + "/" + constants.IdentitiesApiPath
	sm.mux.HandleFunc("PUT "+identitiesPath+"/{identityId}/attributes", identityHandler.AdjudicateAttributeWrite)
	sm.mux.HandleFunc("GET "+identitiesPath+"/{identityId}", identityHandler.GetIdentityAttributes)

	searchHandler := detectionhandler.NewDuplicateSearchHandler()
	sm.mux.HandleFunc("POST "+apiBasePath+"/"+constants.DuplicateSearchApiPath, searchHandler.SearchDuplicates)
	sm.mux.HandleFunc("POST "+apiBasePath+"/"+constants.DuplicateEvaluateApiPath, searchHandler.EvaluateDuplicatePair)

	return nil
}
