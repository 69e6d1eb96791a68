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

package service

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openiam/identity-registry-service/internal/certification/model"
	"github.com/openiam/identity-registry-service/internal/certification/store"
	"github.com/openiam/identity-registry-service/internal/system/cache"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// referentialCache holds trust levels keyed by "processCode::attributeKey".
var referentialCache = cache.NewCache(15 * time.Minute)

// CertificationServiceInterface defines the operations of the certification referential.
type CertificationServiceInterface interface {
	CreateCertificationMapping(initiatorID string, request model.CertificationMappingRequest) (model.CertificationMapping, error)
	GetCertificationMappings() (model.CertificationMappingListResponse, error)
	UpdateCertificationMapping(initiatorID string, request model.CertificationMappingRequest) (model.CertificationMapping, error)
	DeleteCertificationMapping(initiatorID, processCode, attributeKey string) error
	ResolveLevel(processCode, attributeKey string) (int64, error)
	ResolveMapping(processCode, attributeKey string) (*model.CertificationMapping, error)
	RefreshReferential() error
}

// CertificationService is the default implementation of the CertificationServiceInterface.
type CertificationService struct{}

// GetCertificationService creates a new instance of CertificationService.
func GetCertificationService() CertificationServiceInterface {
	return &CertificationService{}
}

func (cs *CertificationService) CreateCertificationMapping(initiatorID string,
	request model.CertificationMappingRequest) (model.CertificationMapping, error) {

	if err := validateMappingRequest(request); err != nil {
		return model.CertificationMapping{}, err
	}

	existing, err := store.GetCertificationMapping(request.ProcessCode, request.AttributeKey)
	if err != nil {
		return model.CertificationMapping{}, err
	}
	if existing != nil {
		return model.CertificationMapping{}, errors.NewClientError(errors.ErrorMessage{
			Code:    errors.CERTIFICATION_MAPPING_EXISTS.Code,
			Message: errors.CERTIFICATION_MAPPING_EXISTS.Message,
			Description: fmt.Sprintf("An active certification mapping already exists for process: %s and attribute: %s",
				request.ProcessCode, request.AttributeKey),
		}, http.StatusConflict)
	}

	mapping := model.CertificationMapping{
		MappingId:    uuid.New().String(),
		ProcessCode:  request.ProcessCode,
		ProcessName:  request.ProcessName,
		AttributeKey: request.AttributeKey,
		Level:        request.Level,
	}
	if err := store.AddCertificationMapping(mapping); err != nil {
		return model.CertificationMapping{}, err
	}
	referentialCache.Set(referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey), mapping)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey),
		TargetType:    log.TargetTypeCertificationMapping,
		ActionID:      log.ActionAddCertificationMapping,
	})
	return mapping, nil
}

func (cs *CertificationService) GetCertificationMappings() (model.CertificationMappingListResponse, error) {

	mappings, err := store.GetCertificationMappings()
	if err != nil {
		return model.CertificationMappingListResponse{}, err
	}
	return model.CertificationMappingListResponse{
		TotalResults: len(mappings),
		Mappings:     mappings,
	}, nil
}

// UpdateCertificationMapping replaces the active mapping for a pair. The old
// mapping row is deactivated rather than rewritten, keeping the level history.
func (cs *CertificationService) UpdateCertificationMapping(initiatorID string,
	request model.CertificationMappingRequest) (model.CertificationMapping, error) {

	if err := validateMappingRequest(request); err != nil {
		return model.CertificationMapping{}, err
	}

	existing, err := store.GetCertificationMapping(request.ProcessCode, request.AttributeKey)
	if err != nil {
		return model.CertificationMapping{}, err
	}
	if existing == nil {
		return model.CertificationMapping{}, mappingNotFoundError(request.ProcessCode, request.AttributeKey)
	}

	if err := store.DeactivateCertificationMapping(request.ProcessCode, request.AttributeKey); err != nil {
		return model.CertificationMapping{}, err
	}

	mapping := model.CertificationMapping{
		MappingId:    uuid.New().String(),
		ProcessCode:  request.ProcessCode,
		ProcessName:  request.ProcessName,
		AttributeKey: request.AttributeKey,
		Level:        request.Level,
	}
	if err := store.AddCertificationMapping(mapping); err != nil {
		return model.CertificationMapping{}, err
	}
	referentialCache.Set(referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey), mapping)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey),
		TargetType:    log.TargetTypeCertificationMapping,
		ActionID:      log.ActionUpdateCertificationMapping,
	})
	return mapping, nil
}

func (cs *CertificationService) DeleteCertificationMapping(initiatorID, processCode, attributeKey string) error {

	existing, err := store.GetCertificationMapping(processCode, attributeKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return mappingNotFoundError(processCode, attributeKey)
	}

	if err := store.DeactivateCertificationMapping(processCode, attributeKey); err != nil {
		return err
	}
	referentialCache.Invalidate(referentialCacheKey(processCode, attributeKey))

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      referentialCacheKey(processCode, attributeKey),
		TargetType:    log.TargetTypeCertificationMapping,
		ActionID:      log.ActionDeleteCertificationMapping,
	})
	return nil
}

// ResolveLevel returns the trust level granted to the (process, attribute)
// pair. Unmapped pairs, including an empty process code, carry level 0.
func (cs *CertificationService) ResolveLevel(processCode, attributeKey string) (int64, error) {

	mapping, err := cs.ResolveMapping(processCode, attributeKey)
	if err != nil {
		return 0, err
	}
	if mapping == nil {
		return 0, nil
	}
	return mapping.Level, nil
}

// ResolveMapping returns the active mapping for the pair through the
// referential cache, or nil when the pair is unmapped.
func (cs *CertificationService) ResolveMapping(processCode, attributeKey string) (*model.CertificationMapping, error) {

	if processCode == "" {
		return nil, nil
	}

	if cached, found := referentialCache.Get(referentialCacheKey(processCode, attributeKey)); found {
		if mapping, ok := cached.(model.CertificationMapping); ok {
			return &mapping, nil
		}
	}

	mapping, err := store.GetCertificationMapping(processCode, attributeKey)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, nil
	}
	referentialCache.Set(referentialCacheKey(processCode, attributeKey), *mapping)
	return mapping, nil
}

// RefreshReferential reloads every active mapping and swaps the cache content.
func (cs *CertificationService) RefreshReferential() error {

	mappings, err := store.GetCertificationMappings()
	if err != nil {
		return err
	}

	entries := make(map[string]interface{}, len(mappings))
	for _, mapping := range mappings {
		entries[referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey)] = mapping
	}
	referentialCache.ReplaceAll(entries)

	log.GetLogger().Debug(fmt.Sprintf("Certification referential cache refreshed with %d mappings", len(mappings)))
	return nil
}

func validateMappingRequest(request model.CertificationMappingRequest) error {

	if strings.TrimSpace(request.ProcessCode) == "" {
		return badRequestError("process_code must not be empty")
	}
	if strings.TrimSpace(request.AttributeKey) == "" {
		return badRequestError("attribute_key must not be empty")
	}
	if request.Level < 0 {
		return badRequestError("level must not be negative")
	}
	return nil
}

func referentialCacheKey(processCode, attributeKey string) string {
	return processCode + "::" + attributeKey
}

func badRequestError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.BAD_REQUEST.Code,
		Message:     errors.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func mappingNotFoundError(processCode, attributeKey string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:    errors.CERTIFICATION_MAPPING_NOT_FOUND.Code,
		Message: errors.CERTIFICATION_MAPPING_NOT_FOUND.Message,
		Description: fmt.Sprintf("No active certification mapping found for process: %s and attribute: %s",
			processCode, attributeKey),
	}, http.StatusNotFound)
}
