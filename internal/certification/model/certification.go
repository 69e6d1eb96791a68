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

package model

// CertificationMapping grants a trust level to one (process, attribute) pair.
// A pair without an active mapping carries the default level 0.
type CertificationMapping struct {
	MappingId    string `json:"mapping_id"`
	ProcessCode  string `json:"process_code"`
	ProcessName  string `json:"process_name"`
	AttributeKey string `json:"attribute_key"`
	Level        int64  `json:"level"`
}

// CertificationMappingRequest is the request payload for creating or updating a mapping.
type CertificationMappingRequest struct {
	ProcessCode  string `json:"process_code"`
	ProcessName  string `json:"process_name"`
	AttributeKey string `json:"attribute_key"`
	Level        int64  `json:"level"`
}

// CertificationMappingListResponse wraps the active referential.
type CertificationMappingListResponse struct {
	TotalResults int                    `json:"total_results"`
	Mappings     []CertificationMapping `json:"mappings"`
}
