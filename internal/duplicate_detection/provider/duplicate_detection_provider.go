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
	"github.com/openiam/identity-registry-service/internal/duplicate_detection/service"
)

// DuplicateDetectionProviderInterface defines the interface for the duplicate detection provider.
type DuplicateDetectionProviderInterface interface {
	GetDuplicateDetectionService() service.DuplicateDetectionServiceInterface
}

// DuplicateDetectionProvider is the default implementation of the DuplicateDetectionProviderInterface.
type DuplicateDetectionProvider struct{}

// NewDuplicateDetectionProvider creates a new instance of DuplicateDetectionProvider.
func NewDuplicateDetectionProvider() DuplicateDetectionProviderInterface {
	return &DuplicateDetectionProvider{}
}

// GetDuplicateDetectionService returns the duplicate detection service instance.
func (ddp *DuplicateDetectionProvider) GetDuplicateDetectionService() service.DuplicateDetectionServiceInterface {
	return service.GetDuplicateDetectionService()
}
