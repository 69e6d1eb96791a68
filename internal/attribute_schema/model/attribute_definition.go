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

// AttributeDefinition describes one entry of the attribute catalogue.
type AttributeDefinition struct {
	AttributeKey         string `json:"attribute_key"`
	DisplayName          string `json:"display_name"`
	ValueType            string `json:"value_type"`
	Certifiable          bool   `json:"certifiable"`
	Pivot                bool   `json:"pivot"`
	MandatoryForCreation bool   `json:"mandatory_for_creation"`
	Weight               int64  `json:"weight"`
	ValidationPattern    string `json:"validation_pattern,omitempty"`
	CommonSearchKeyName  string `json:"common_search_key_name,omitempty"`
	CreatedAt            int64  `json:"created_at,omitempty"`
	UpdatedAt            int64  `json:"updated_at,omitempty"`
}

// AttributeDefinitionRequest is the request payload for creating or replacing a definition.
type AttributeDefinitionRequest struct {
	AttributeKey         string `json:"attribute_key"`
	DisplayName          string `json:"display_name"`
	ValueType            string `json:"value_type"`
	Certifiable          bool   `json:"certifiable"`
	Pivot                bool   `json:"pivot"`
	MandatoryForCreation bool   `json:"mandatory_for_creation"`
	Weight               int64  `json:"weight"`
	ValidationPattern    string `json:"validation_pattern,omitempty"`
	CommonSearchKeyName  string `json:"common_search_key_name,omitempty"`
}

// AttributeDefinitionListResponse wraps the full catalogue.
type AttributeDefinitionListResponse struct {
	TotalResults int                   `json:"total_results"`
	Attributes   []AttributeDefinition `json:"attributes"`
}
