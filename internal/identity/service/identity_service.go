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

	adjmodel "github.com/openiam/identity-registry-service/internal/adjudication/model"
	adjservice "github.com/openiam/identity-registry-service/internal/adjudication/service"
	schemamodel "github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	schemaprovider "github.com/openiam/identity-registry-service/internal/attribute_schema/provider"
	schemaservice "github.com/openiam/identity-registry-service/internal/attribute_schema/service"
	certprovider "github.com/openiam/identity-registry-service/internal/certification/provider"
	"github.com/openiam/identity-registry-service/internal/identity/model"
	"github.com/openiam/identity-registry-service/internal/identity/store"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/openiam/identity-registry-service/internal/system/workers"
)

// IdentityServiceInterface defines the identity registry operations.
type IdentityServiceInterface interface {
	AdjudicateAttributeWrite(initiatorID, identityId string, request model.AttributeWriteRequest) (model.AttributeWriteResponse, error)
	GetIdentityAttributes(identityId string) (model.IdentityAttributesResponse, error)
}

// IdentityService is the default implementation of the IdentityServiceInterface.
type IdentityService struct{}

// GetIdentityService creates a new instance of IdentityService.
func GetIdentityService() IdentityServiceInterface {
	return &IdentityService{}
}

// AdjudicateAttributeWrite runs every proposed attribute of the batch through
// the trust resolution engine and applies the winning writes. Losing writes
// are reported in the per-attribute results, never as a request failure.
func (is *IdentityService) AdjudicateAttributeWrite(initiatorID, identityId string,
	request model.AttributeWriteRequest) (model.AttributeWriteResponse, error) {

	if len(request.Attributes) == 0 {
		return model.AttributeWriteResponse{}, badRequestError("attributes must not be empty")
	}

	schemaService := schemaprovider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	certificationService := certprovider.NewCertificationProvider().GetCertificationService()
	engine := adjservice.GetAdjudicationService(certificationService.ResolveLevel)

	// Resolve and validate every proposed attribute against the catalogue
	// before touching the identity.
	definitions := make(map[string]schemamodel.AttributeDefinition, len(request.Attributes))
	for _, proposed := range request.Attributes {
		definition, err := schemaService.ResolveDefinition(proposed.AttributeKey)
		if err != nil {
			return model.AttributeWriteResponse{}, err
		}
		if definition == nil {
			return model.AttributeWriteResponse{}, errors.NewClientError(errors.ErrorMessage{
				Code:        errors.ATTRIBUTE_DEFINITION_NOT_FOUND.Code,
				Message:     errors.ATTRIBUTE_DEFINITION_NOT_FOUND.Message,
				Description: fmt.Sprintf("No attribute definition found for key: %s", proposed.AttributeKey),
			}, http.StatusBadRequest)
		}
		if err := schemaService.ValidateAttributeValue(*definition, proposed.Value); err != nil {
			return model.AttributeWriteResponse{}, err
		}
		definitions[proposed.AttributeKey] = *definition
	}

	identity, err := store.GetIdentity(identityId)
	if err != nil {
		return model.AttributeWriteResponse{}, err
	}
	if identity == nil {
		if err := is.checkMandatoryAttributesForCreation(schemaService, request); err != nil {
			return model.AttributeWriteResponse{}, err
		}
		if err := store.EnsureIdentity(identityId); err != nil {
			return model.AttributeWriteResponse{}, err
		}
	}

	currentAttributes, err := store.GetIdentityAttributes(identityId)
	if err != nil {
		return model.AttributeWriteResponse{}, err
	}
	currentByKey := make(map[string]model.AttributeValue, len(currentAttributes))
	for _, attribute := range currentAttributes {
		currentByKey[attribute.AttributeKey] = attribute
	}

	results := make([]model.AttributeWriteResult, 0, len(request.Attributes))
	for _, proposed := range request.Attributes {
		definition := definitions[proposed.AttributeKey]

		incoming := toProposedAttribute(proposed, definition)
		var existing *adjmodel.CurrentAttribute
		if current, found := currentByKey[proposed.AttributeKey]; found {
			existing = toCurrentAttribute(current)
		}

		outcome, err := engine.Adjudicate(proposed.AttributeKey, definition.MandatoryForCreation, incoming, existing)
		if err != nil {
			return model.AttributeWriteResponse{}, err
		}

		switch outcome.Decision {
		case adjmodel.DecisionCreated, adjmodel.DecisionUpdated:
			attribute := model.AttributeValue{
				AttributeKey: proposed.AttributeKey,
				Value:        proposed.Value,
				UpdatedBy:    initiatorID,
			}
			if incoming.Certificate != nil {
				attribute.ProcessCode = incoming.Certificate.ProcessCode
				attribute.ProcessName = incoming.Certificate.ProcessName
				certificationDate := incoming.Certificate.CertificationDate
				attribute.CertificationDate = &certificationDate
				attribute.ExpirationDate = incoming.Certificate.ExpirationDate
			}
			if err := store.UpsertIdentityAttribute(identityId, attribute); err != nil {
				return model.AttributeWriteResponse{}, err
			}
			if incoming.Certificate != nil {
				if err := store.AddAttributeCertificate(identityId, attribute); err != nil {
					return model.AttributeWriteResponse{}, err
				}
			}
			currentByKey[proposed.AttributeKey] = attribute
		case adjmodel.DecisionRemoved:
			if _, found := currentByKey[proposed.AttributeKey]; found {
				if err := store.DeleteIdentityAttribute(identityId, proposed.AttributeKey); err != nil {
					return model.AttributeWriteResponse{}, err
				}
				delete(currentByKey, proposed.AttributeKey)
			}
		}

		results = append(results, model.AttributeWriteResult{
			AttributeKey: proposed.AttributeKey,
			Decision:     outcome.Decision.String(),
			Status:       string(outcome.Status),
		})
	}

	qualityScore, err := is.computeQualityScore(schemaService, currentByKey)
	if err != nil {
		return model.AttributeWriteResponse{}, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      identityId,
		TargetType:    log.TargetTypeIdentity,
		ActionID:      log.ActionAdjudicateAttributeWrite,
		Data:          results,
	})

	// Accepted writes can change the duplicate picture; let the background
	// worker re-scan this identity against the daemon rules.
	workers.EnqueueIdentityForScan(identityId)

	return model.AttributeWriteResponse{
		IdentityId:   identityId,
		Results:      results,
		QualityScore: qualityScore,
	}, nil
}

func (is *IdentityService) GetIdentityAttributes(identityId string) (model.IdentityAttributesResponse, error) {

	identity, err := store.GetIdentity(identityId)
	if err != nil {
		return model.IdentityAttributesResponse{}, err
	}
	if identity == nil {
		return model.IdentityAttributesResponse{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.IDENTITY_NOT_FOUND.Code,
			Message:     errors.IDENTITY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No identity record found for id: %s", identityId),
		}, http.StatusNotFound)
	}

	attributes, err := store.GetIdentityAttributes(identityId)
	if err != nil {
		return model.IdentityAttributesResponse{}, err
	}

	schemaService := schemaprovider.NewAttributeSchemaProvider().GetAttributeSchemaService()
	byKey := make(map[string]model.AttributeValue, len(attributes))
	for _, attribute := range attributes {
		byKey[attribute.AttributeKey] = attribute
	}
	qualityScore, err := is.computeQualityScore(schemaService, byKey)
	if err != nil {
		return model.IdentityAttributesResponse{}, err
	}

	return model.IdentityAttributesResponse{
		IdentityId:     identity.IdentityId,
		DuplicateState: identity.DuplicateState,
		Attributes:     attributes,
		QualityScore:   qualityScore,
	}, nil
}

// checkMandatoryAttributesForCreation ensures a batch that creates a new
// identity carries a non-blank value for every mandatory attribute.
func (is *IdentityService) checkMandatoryAttributesForCreation(
	schemaService schemaservice.AttributeSchemaServiceInterface, request model.AttributeWriteRequest) error {

	catalogue, err := schemaService.GetAttributeDefinitions()
	if err != nil {
		return err
	}

	provided := make(map[string]bool, len(request.Attributes))
	for _, proposed := range request.Attributes {
		if strings.TrimSpace(proposed.Value) != "" {
			provided[proposed.AttributeKey] = true
		}
	}

	var missing []string
	for _, definition := range catalogue.Attributes {
		if definition.MandatoryForCreation && !provided[definition.AttributeKey] {
			missing = append(missing, definition.AttributeKey)
		}
	}
	if len(missing) > 0 {
		return badRequestError(fmt.Sprintf(
			"Cannot create identity without the mandatory attributes: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// computeQualityScore sums the catalogue weights of the filled attributes.
func (is *IdentityService) computeQualityScore(schemaService schemaservice.AttributeSchemaServiceInterface,
	attributes map[string]model.AttributeValue) (int64, error) {

	var score int64
	for attributeKey, attribute := range attributes {
		if strings.TrimSpace(attribute.Value) == "" {
			continue
		}
		definition, err := schemaService.ResolveDefinition(attributeKey)
		if err != nil {
			return 0, err
		}
		if definition != nil {
			score += definition.Weight
		}
	}
	return score, nil
}

func toProposedAttribute(proposed model.ProposedAttributeWrite,
	definition schemamodel.AttributeDefinition) adjmodel.ProposedAttribute {

	incoming := adjmodel.ProposedAttribute{
		AttributeKey: proposed.AttributeKey,
		Value:        proposed.Value,
	}
	// Certificates are only honoured on certifiable attributes; anywhere else
	// the write competes at the default level 0.
	if proposed.ProcessCode != "" && definition.Certifiable {
		certificationDate := time.Now().UTC()
		if proposed.CertificationDate != nil {
			certificationDate = *proposed.CertificationDate
		}
		incoming.Certificate = &adjmodel.Certificate{
			ProcessCode:       proposed.ProcessCode,
			ProcessName:       proposed.ProcessName,
			CertificationDate: certificationDate,
			ExpirationDate:    proposed.ExpirationDate,
		}
	}
	return incoming
}

func toCurrentAttribute(current model.AttributeValue) *adjmodel.CurrentAttribute {

	existing := &adjmodel.CurrentAttribute{Value: current.Value}
	if current.ProcessCode != "" {
		certificate := &adjmodel.Certificate{
			ProcessCode:    current.ProcessCode,
			ProcessName:    current.ProcessName,
			ExpirationDate: current.ExpirationDate,
		}
		if current.CertificationDate != nil {
			certificate.CertificationDate = *current.CertificationDate
		}
		existing.Certificate = certificate
	}
	return existing
}

func badRequestError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.BAD_REQUEST.Code,
		Message:     errors.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}
