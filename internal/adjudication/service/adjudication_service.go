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
	"strings"
	"time"

	"github.com/openiam/identity-registry-service/internal/adjudication/model"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// LevelResolver resolves the trust level of a (process, attribute) pair. An
// unmapped pair resolves to level 0.
type LevelResolver func(processCode, attributeKey string) (int64, error)

// AdjudicationServiceInterface defines the trust resolution engine.
type AdjudicationServiceInterface interface {
	Adjudicate(attributeKey string, mandatory bool, incoming model.ProposedAttribute,
		existing *model.CurrentAttribute) (model.Outcome, error)
}

// AdjudicationService adjudicates proposed attribute writes against the
// stored value and its certificate.
type AdjudicationService struct {
	resolveLevel LevelResolver
}

// GetAdjudicationService creates a new engine backed by the given level resolver.
func GetAdjudicationService(resolver LevelResolver) AdjudicationServiceInterface {
	return &AdjudicationService{resolveLevel: resolver}
}

// Adjudicate decides whether the incoming write wins against the stored
// attribute. A write never lowers the certification level of a stored value:
// a lower-level write is rejected, an equal-or-higher-level write wins.
// Blank incoming values request removal, which mandatory attributes resist.
func (as *AdjudicationService) Adjudicate(attributeKey string, mandatory bool,
	incoming model.ProposedAttribute, existing *model.CurrentAttribute) (model.Outcome, error) {

	logger := log.GetLogger()

	incomingLevel, err := as.certificateLevel(incoming.Certificate, attributeKey)
	if err != nil {
		return model.Outcome{}, err
	}
	var existingLevel int64
	if existing != nil {
		existingLevel, err = as.certificateLevel(existing.Certificate, attributeKey)
		if err != nil {
			return model.Outcome{}, err
		}
	}

	// Identical replay: same value at the same level, not fresher than what
	// is stored. Nothing to record, not even a certificate.
	if existing != nil && incomingLevel == existingLevel && incoming.Value == existing.Value &&
		!certificateDate(incoming.Certificate).After(certificateDate(existing.Certificate)) {
		return model.Outcome{Decision: model.DecisionNoChange, Status: model.StatusNotUpdated}, nil
	}

	if incomingLevel < existingLevel {
		logger.Debug(fmt.Sprintf("Write rejected for attribute %s: incoming level %d is below existing level %d",
			attributeKey, incomingLevel, existingLevel))
		return model.Outcome{Decision: model.DecisionRejected, Status: model.StatusInsufficientCertLevel}, nil
	}

	if strings.TrimSpace(incoming.Value) == "" {
		if mandatory {
			return model.Outcome{Decision: model.DecisionRejected, Status: model.StatusNotRemoved}, nil
		}
		return model.Outcome{Decision: model.DecisionRemoved, Status: model.StatusRemoved}, nil
	}

	if existing == nil {
		return model.Outcome{Decision: model.DecisionCreated, Status: model.StatusCreated}, nil
	}
	return model.Outcome{Decision: model.DecisionUpdated, Status: model.StatusUpdated}, nil
}

// certificateLevel resolves the trust level a certificate grants for the
// attribute. A missing certificate carries the default level 0.
func (as *AdjudicationService) certificateLevel(certificate *model.Certificate, attributeKey string) (int64, error) {
	if certificate == nil || certificate.ProcessCode == "" {
		return 0, nil
	}
	return as.resolveLevel(certificate.ProcessCode, attributeKey)
}

func certificateDate(certificate *model.Certificate) time.Time {
	if certificate == nil {
		return time.Time{}
	}
	return certificate.CertificationDate
}
