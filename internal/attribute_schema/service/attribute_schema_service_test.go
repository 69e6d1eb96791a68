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
	"testing"

	"github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	errors2 "github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func TestValidateDefinitionRequest(t *testing.T) {

	valid := model.AttributeDefinitionRequest{
		AttributeKey: "birth_date",
		DisplayName:  "Birth Date",
		ValueType:    constants.ValueTypeDate,
		Weight:       10,
	}
	require.NoError(t, validateDefinitionRequest(valid))

	tests := []struct {
		name   string
		mutate func(r *model.AttributeDefinitionRequest)
	}{
		{"empty key", func(r *model.AttributeDefinitionRequest) { r.AttributeKey = "" }},
		{"upper case key", func(r *model.AttributeDefinitionRequest) { r.AttributeKey = "BirthDate" }},
		{"empty display name", func(r *model.AttributeDefinitionRequest) { r.DisplayName = " " }},
		{"unknown value type", func(r *model.AttributeDefinitionRequest) { r.ValueType = "boolean" }},
		{"negative weight", func(r *model.AttributeDefinitionRequest) { r.Weight = -1 }},
		{"broken pattern", func(r *model.AttributeDefinitionRequest) { r.ValidationPattern = "([a-z" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := valid
			tc.mutate(&request)
			err := validateDefinitionRequest(request)
			require.Error(t, err)
			var clientError *errors2.ClientError
			require.ErrorAs(t, err, &clientError)
			assert.Equal(t, errors2.BAD_REQUEST.Code, clientError.ErrorMessage.Code)
		})
	}
}

func TestValidateAttributeValue(t *testing.T) {

	schemaService := GetAttributeSchemaService()

	numeric := model.AttributeDefinition{AttributeKey: "shoe_size", ValueType: constants.ValueTypeNumeric}
	assert.NoError(t, schemaService.ValidateAttributeValue(numeric, "42.5"))
	assert.Error(t, schemaService.ValidateAttributeValue(numeric, "large"))

	date := model.AttributeDefinition{AttributeKey: "birth_date", ValueType: constants.ValueTypeDate}
	assert.NoError(t, schemaService.ValidateAttributeValue(date, "1990-04-12"))
	assert.NoError(t, schemaService.ValidateAttributeValue(date, "1990-04-12T00:00:00Z"))
	assert.Error(t, schemaService.ValidateAttributeValue(date, "April 12th"))

	patterned := model.AttributeDefinition{
		AttributeKey:      "national_id",
		ValueType:         constants.ValueTypeString,
		ValidationPattern: `^\d{9}$`,
	}
	assert.NoError(t, schemaService.ValidateAttributeValue(patterned, "123456789"))
	assert.Error(t, schemaService.ValidateAttributeValue(patterned, "12345"))
}

func TestValidateAttributeValueAcceptsBlankValues(t *testing.T) {

	schemaService := GetAttributeSchemaService()
	definition := model.AttributeDefinition{
		AttributeKey:      "email",
		ValueType:         constants.ValueTypeString,
		ValidationPattern: `^.+@.+$`,
	}

	// Blank values bypass validation since they carry removal semantics.
	assert.NoError(t, schemaService.ValidateAttributeValue(definition, ""))
	assert.NoError(t, schemaService.ValidateAttributeValue(definition, "   "))
}
