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

import "time"

// Identity is one person record of the registry.
type Identity struct {
	IdentityId     string `json:"identity_id"`
	DuplicateState string `json:"duplicate_state"`
	CreatedAt      int64  `json:"created_at"`
	UpdatedAt      int64  `json:"updated_at"`
}

// AttributeValue is one stored attribute of an identity together with the
// certificate of the process that vouched for it, if any.
type AttributeValue struct {
	AttributeKey      string     `json:"attribute_key"`
	Value             string     `json:"value"`
	ProcessCode       string     `json:"process_code,omitempty"`
	ProcessName       string     `json:"process_name,omitempty"`
	CertificationDate *time.Time `json:"certification_date,omitempty"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
	UpdatedBy         string     `json:"updated_by,omitempty"`
}

// ProposedAttributeWrite is one attribute of an attribute write request.
type ProposedAttributeWrite struct {
	AttributeKey      string     `json:"attribute_key"`
	Value             string     `json:"value"`
	ProcessCode       string     `json:"process_code,omitempty"`
	ProcessName       string     `json:"process_name,omitempty"`
	CertificationDate *time.Time `json:"certification_date,omitempty"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
}

// AttributeWriteRequest proposes a batch of attribute writes for one identity.
type AttributeWriteRequest struct {
	Attributes []ProposedAttributeWrite `json:"attributes"`
}

// AttributeWriteResult is the adjudication verdict for one proposed attribute.
type AttributeWriteResult struct {
	AttributeKey string `json:"attribute_key"`
	Decision     string `json:"decision"`
	Status       string `json:"status"`
}

// AttributeWriteResponse reports the per-attribute verdicts and the quality
// score of the identity after the accepted writes were applied.
type AttributeWriteResponse struct {
	IdentityId   string                 `json:"identity_id"`
	Results      []AttributeWriteResult `json:"results"`
	QualityScore int64                  `json:"quality_score"`
}

// IdentityAttributesResponse is the stored view of an identity.
type IdentityAttributesResponse struct {
	IdentityId     string           `json:"identity_id"`
	DuplicateState string           `json:"duplicate_state"`
	Attributes     []AttributeValue `json:"attributes"`
	QualityScore   int64            `json:"quality_score"`
}
