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
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	"github.com/openiam/identity-registry-service/internal/attribute_schema/store"
	"github.com/openiam/identity-registry-service/internal/system/cache"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

var attributeKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// catalogueCache holds attribute definitions keyed by attribute key.
var catalogueCache = cache.NewCache(15 * time.Minute)

// AttributeSchemaServiceInterface defines the operations of the attribute catalogue.
type AttributeSchemaServiceInterface interface {
	CreateAttributeDefinition(initiatorID string, request model.AttributeDefinitionRequest) (model.AttributeDefinition, error)
	GetAttributeDefinitions() (model.AttributeDefinitionListResponse, error)
	GetAttributeDefinition(attributeKey string) (model.AttributeDefinition, error)
	UpdateAttributeDefinition(initiatorID, attributeKey string, request model.AttributeDefinitionRequest) (model.AttributeDefinition, error)
	DeleteAttributeDefinition(initiatorID, attributeKey string) error
	ResolveDefinition(attributeKey string) (*model.AttributeDefinition, error)
	ValidateAttributeValue(definition model.AttributeDefinition, value string) error
	RefreshCatalogue() error
}

// AttributeSchemaService is the default implementation of the AttributeSchemaServiceInterface.
type AttributeSchemaService struct{}

// GetAttributeSchemaService creates a new instance of AttributeSchemaService.
func GetAttributeSchemaService() AttributeSchemaServiceInterface {
	return &AttributeSchemaService{}
}

func (as *AttributeSchemaService) CreateAttributeDefinition(initiatorID string,
	request model.AttributeDefinitionRequest) (model.AttributeDefinition, error) {

	if err := validateDefinitionRequest(request); err != nil {
		return model.AttributeDefinition{}, err
	}

	existing, err := store.GetAttributeDefinition(request.AttributeKey)
	if err != nil {
		return model.AttributeDefinition{}, err
	}
	if existing != nil {
		return model.AttributeDefinition{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.ATTRIBUTE_ALREADY_EXISTS.Code,
			Message:     errors.ATTRIBUTE_ALREADY_EXISTS.Message,
			Description: fmt.Sprintf("An attribute definition already exists for key: %s", request.AttributeKey),
		}, http.StatusConflict)
	}

	now := time.Now().Unix()
	definition := definitionFromRequest(request)
	definition.CreatedAt = now
	definition.UpdatedAt = now

	if err := store.AddAttributeDefinition(definition); err != nil {
		return model.AttributeDefinition{}, err
	}
	catalogueCache.Set(definition.AttributeKey, definition)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      definition.AttributeKey,
		TargetType:    log.TargetTypeAttributeDefinition,
		ActionID:      log.ActionAddAttributeDefinition,
	})
	return definition, nil
}

func (as *AttributeSchemaService) GetAttributeDefinitions() (model.AttributeDefinitionListResponse, error) {

	definitions, err := store.GetAttributeDefinitions()
	if err != nil {
		return model.AttributeDefinitionListResponse{}, err
	}
	return model.AttributeDefinitionListResponse{
		TotalResults: len(definitions),
		Attributes:   definitions,
	}, nil
}

func (as *AttributeSchemaService) GetAttributeDefinition(attributeKey string) (model.AttributeDefinition, error) {

	definition, err := store.GetAttributeDefinition(attributeKey)
	if err != nil {
		return model.AttributeDefinition{}, err
	}
	if definition == nil {
		return model.AttributeDefinition{}, attributeNotFoundError(attributeKey)
	}
	return *definition, nil
}

func (as *AttributeSchemaService) UpdateAttributeDefinition(initiatorID, attributeKey string,
	request model.AttributeDefinitionRequest) (model.AttributeDefinition, error) {

	if request.AttributeKey != "" && request.AttributeKey != attributeKey {
		return model.AttributeDefinition{}, errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "The attribute key of a definition cannot be changed",
		}, http.StatusBadRequest)
	}
	request.AttributeKey = attributeKey
	if err := validateDefinitionRequest(request); err != nil {
		return model.AttributeDefinition{}, err
	}

	existing, err := store.GetAttributeDefinition(attributeKey)
	if err != nil {
		return model.AttributeDefinition{}, err
	}
	if existing == nil {
		return model.AttributeDefinition{}, attributeNotFoundError(attributeKey)
	}

	definition := definitionFromRequest(request)
	definition.CreatedAt = existing.CreatedAt
	definition.UpdatedAt = time.Now().Unix()

	if err := store.UpdateAttributeDefinition(definition); err != nil {
		return model.AttributeDefinition{}, err
	}
	catalogueCache.Set(attributeKey, definition)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      attributeKey,
		TargetType:    log.TargetTypeAttributeDefinition,
		ActionID:      log.ActionUpdateAttributeDefinition,
	})
	return definition, nil
}

func (as *AttributeSchemaService) DeleteAttributeDefinition(initiatorID, attributeKey string) error {

	existing, err := store.GetAttributeDefinition(attributeKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return attributeNotFoundError(attributeKey)
	}

	if err := store.DeleteAttributeDefinition(attributeKey); err != nil {
		return err
	}
	catalogueCache.Invalidate(attributeKey)

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   initiatorID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      attributeKey,
		TargetType:    log.TargetTypeAttributeDefinition,
		ActionID:      log.ActionDeleteAttributeDefinition,
	})
	return nil
}

// ResolveDefinition returns the catalogued definition for the key, or nil for
// an uncatalogued key. Reads go through the catalogue cache.
func (as *AttributeSchemaService) ResolveDefinition(attributeKey string) (*model.AttributeDefinition, error) {

	if cached, found := catalogueCache.Get(attributeKey); found {
		if definition, ok := cached.(model.AttributeDefinition); ok {
			return &definition, nil
		}
	}

	definition, err := store.GetAttributeDefinition(attributeKey)
	if err != nil {
		return nil, err
	}
	if definition == nil {
		return nil, nil
	}
	catalogueCache.Set(attributeKey, *definition)
	return definition, nil
}

// ValidateAttributeValue checks a non-blank value against the definition's
// value type and validation pattern. Blank values are always accepted since a
// blank value carries removal semantics.
func (as *AttributeSchemaService) ValidateAttributeValue(definition model.AttributeDefinition, value string) error {

	if strings.TrimSpace(value) == "" {
		return nil
	}

	switch definition.ValueType {
	case constants.ValueTypeNumeric:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return invalidValueError(definition.AttributeKey, "the value is not numeric")
		}
	case constants.ValueTypeDate:
		if !isParsableDate(value) {
			return invalidValueError(definition.AttributeKey, "the value is not a parsable date")
		}
	}

	if definition.ValidationPattern != "" {
		pattern, err := regexp.Compile(definition.ValidationPattern)
		if err != nil {
			return errors.NewServerError(errors.ErrorMessage{
				Code:        errors.FETCH_ATTRIBUTE_DEFINITIONS.Code,
				Message:     errors.FETCH_ATTRIBUTE_DEFINITIONS.Message,
				Description: fmt.Sprintf("Stored validation pattern for attribute %s does not compile", definition.AttributeKey),
			}, err)
		}
		if !pattern.MatchString(value) {
			return invalidValueError(definition.AttributeKey, "the value does not match the validation pattern")
		}
	}
	return nil
}

// RefreshCatalogue reloads every definition from the store and swaps the cache content.
func (as *AttributeSchemaService) RefreshCatalogue() error {

	definitions, err := store.GetAttributeDefinitions()
	if err != nil {
		return err
	}

	entries := make(map[string]interface{}, len(definitions))
	for _, definition := range definitions {
		entries[definition.AttributeKey] = definition
	}
	catalogueCache.ReplaceAll(entries)

	log.GetLogger().Debug(fmt.Sprintf("Attribute catalogue cache refreshed with %d definitions", len(definitions)))
	return nil
}

func validateDefinitionRequest(request model.AttributeDefinitionRequest) error {

	if request.AttributeKey == "" || !attributeKeyPattern.MatchString(request.AttributeKey) {
		return badRequestError("attribute_key must be a non-empty lower-case identifier")
	}
	if strings.TrimSpace(request.DisplayName) == "" {
		return badRequestError("display_name must not be empty")
	}
	if !constants.AllowedValueTypes[request.ValueType] {
		return badRequestError(fmt.Sprintf("value_type must be one of string, numeric, file, date but was: %s",
			request.ValueType))
	}
	if request.Weight < 0 {
		return badRequestError("weight must not be negative")
	}
	if request.ValidationPattern != "" {
		if _, err := regexp.Compile(request.ValidationPattern); err != nil {
			return badRequestError("validation_pattern is not a valid regular expression")
		}
	}
	return nil
}

func definitionFromRequest(request model.AttributeDefinitionRequest) model.AttributeDefinition {
	return model.AttributeDefinition{
		AttributeKey:         request.AttributeKey,
		DisplayName:          request.DisplayName,
		ValueType:            request.ValueType,
		Certifiable:          request.Certifiable,
		Pivot:                request.Pivot,
		MandatoryForCreation: request.MandatoryForCreation,
		Weight:               request.Weight,
		ValidationPattern:    request.ValidationPattern,
		CommonSearchKeyName:  request.CommonSearchKeyName,
	}
}

func isParsableDate(value string) bool {
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func badRequestError(description string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.BAD_REQUEST.Code,
		Message:     errors.BAD_REQUEST.Message,
		Description: description,
	}, http.StatusBadRequest)
}

func invalidValueError(attributeKey, reason string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.INVALID_ATTRIBUTE_VALUE.Code,
		Message:     errors.INVALID_ATTRIBUTE_VALUE.Message,
		Description: fmt.Sprintf("Invalid value for attribute %s: %s", attributeKey, reason),
	}, http.StatusBadRequest)
}

func attributeNotFoundError(attributeKey string) error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.ATTRIBUTE_DEFINITION_NOT_FOUND.Code,
		Message:     errors.ATTRIBUTE_DEFINITION_NOT_FOUND.Message,
		Description: fmt.Sprintf("No attribute definition found for key: %s", attributeKey),
	}, http.StatusNotFound)
}
