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

package provider

import (
	"github.com/openiam/identity-registry-service/internal/attribute_schema/service"
)

// AttributeSchemaProviderInterface defines the interface for the attribute schema provider.
type AttributeSchemaProviderInterface interface {
	GetAttributeSchemaService() service.AttributeSchemaServiceInterface
}

// AttributeSchemaProvider is the default implementation of the AttributeSchemaProviderInterface.
type AttributeSchemaProvider struct{}

// NewAttributeSchemaProvider creates a new instance of AttributeSchemaProvider.
func NewAttributeSchemaProvider() AttributeSchemaProviderInterface {
	return &AttributeSchemaProvider{}
}

// GetAttributeSchemaService returns the attribute schema service instance.
func (asp *AttributeSchemaProvider) GetAttributeSchemaService() service.AttributeSchemaServiceInterface {
	return service.GetAttributeSchemaService()
}
