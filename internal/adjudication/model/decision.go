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

// Decision is the verdict of adjudicating one proposed attribute write.
type Decision int

const (
	DecisionNoChange Decision = iota
	DecisionRejected
	DecisionRemoved
	DecisionCreated
	DecisionUpdated
)

func (d Decision) String() string {
	switch d {
	case DecisionNoChange:
		return "NO_CHANGE"
	case DecisionRejected:
		return "REJECTED"
	case DecisionRemoved:
		return "REMOVED"
	case DecisionCreated:
		return "CREATED"
	case DecisionUpdated:
		return "UPDATED"
	default:
		return "UNKNOWN"
	}
}

// AttributeStatus is the per-attribute status reported back to the caller.
type AttributeStatus string

const (
	StatusNotUpdated            AttributeStatus = "NOT_UPDATED"
	StatusInsufficientCertLevel AttributeStatus = "INSUFFICIENT_CERTIFICATION_LEVEL"
	StatusNotRemoved            AttributeStatus = "NOT_REMOVED"
	StatusRemoved               AttributeStatus = "REMOVED"
	StatusCreated               AttributeStatus = "CREATED"
	StatusUpdated               AttributeStatus = "UPDATED"
)

// Certificate records which process vouched for an attribute value and when.
type Certificate struct {
	ProcessCode       string     `json:"process_code"`
	ProcessName       string     `json:"process_name,omitempty"`
	CertificationDate time.Time  `json:"certification_date"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
}

// ProposedAttribute is one incoming attribute write to adjudicate.
type ProposedAttribute struct {
	AttributeKey string       `json:"attribute_key"`
	Value        string       `json:"value"`
	Certificate  *Certificate `json:"certificate,omitempty"`
}

// CurrentAttribute is the stored value and certificate an incoming write competes against.
type CurrentAttribute struct {
	Value       string
	Certificate *Certificate
}

// Outcome couples the engine's decision with the status reported to the caller.
type Outcome struct {
	Decision Decision        `json:"decision"`
	Status   AttributeStatus `json:"status"`
}
