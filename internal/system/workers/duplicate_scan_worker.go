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

package workers

import (
	"fmt"

	detectionprovider "github.com/openiam/identity-registry-service/internal/duplicate_detection/provider"
	rulesmodel "github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	rulesprovider "github.com/openiam/identity-registry-service/internal/duplicate_rules/provider"
	identitystore "github.com/openiam/identity-registry-service/internal/identity/store"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
)

// DuplicateScanQueue feeds identity ids to the background scan worker.
var DuplicateScanQueue chan string

// StartDuplicateScanWorker starts the background worker that evaluates queued
// identities against the daemon-enabled duplicate rules.
func StartDuplicateScanWorker() {

	DuplicateScanQueue = make(chan string, constants.DefaultQueueSize)

	go func() {
		for identityId := range DuplicateScanQueue {
			scanIdentity(identityId)
		}
	}()
}

// EnqueueIdentityForScan queues one identity for a background duplicate scan.
func EnqueueIdentityForScan(identityId string) {
	if DuplicateScanQueue != nil {
		DuplicateScanQueue <- identityId
	}
}

// EnqueueAllIdentities queues every registered identity, used by the
// scheduled full scan.
func EnqueueAllIdentities() error {

	identityIds, err := identitystore.GetIdentityIds()
	if err != nil {
		return scanError(err)
	}
	for _, identityId := range identityIds {
		EnqueueIdentityForScan(identityId)
	}
	log.GetLogger().Info(fmt.Sprintf("Queued %d identities for duplicate scan", len(identityIds)))
	return nil
}

// scanIdentity evaluates one identity against every other identity under the
// daemon-enabled rules, first match wins per pair.
func scanIdentity(identityId string) {

	logger := log.GetLogger()

	rulesService := rulesprovider.NewDuplicateRulesProvider().GetDuplicateRulesService()
	activeRules, err := rulesService.LoadActiveRules()
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load duplicate rules for scanning identity: %s", identityId),
			log.Error(scanError(err)))
		return
	}
	daemonRules := filterDaemonRules(activeRules)
	if len(daemonRules) == 0 {
		logger.Debug("No daemon-enabled duplicate rules, skipping scan.")
		return
	}

	attributes, err := identitystore.GetIdentityAttributes(identityId)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to load attributes for scanning identity: %s", identityId),
			log.Error(scanError(err)))
		return
	}
	candidate := make(map[string]string, len(attributes))
	for _, attribute := range attributes {
		candidate[attribute.AttributeKey] = attribute.Value
	}

	otherIds, err := identitystore.GetIdentityIds()
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to list identities for scanning identity: %s", identityId), log.Error(err))
		return
	}

	detectionService := detectionprovider.NewDuplicateDetectionProvider().GetDuplicateDetectionService()
	flagged := 0
	for _, otherId := range otherIds {
		if otherId == identityId {
			continue
		}
		otherAttributes, err := identitystore.GetIdentityAttributes(otherId)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to load attributes of identity: %s", otherId), log.Error(err))
			continue
		}
		existing := make(map[string]string, len(otherAttributes))
		for _, attribute := range otherAttributes {
			existing[attribute.AttributeKey] = attribute.Value
		}

		verdict := detectionService.FirstMatch(daemonRules, candidate, existing)
		if verdict == nil {
			continue
		}
		if err := detectionService.RecordSuspectedDuplicate(identityId, otherId, verdict.RuleCode); err != nil {
			logger.Error(fmt.Sprintf("Failed to record suspected duplicate pair (%s, %s)", identityId, otherId),
				log.Error(err))
			continue
		}
		flagged++
	}

	if flagged > 0 {
		log.GetLogger().Audit(log.AuditEvent{
			InitiatorType: log.InitiatorTypeSystem,
			TargetID:      identityId,
			TargetType:    log.TargetTypeIdentity,
			ActionID:      log.ActionDuplicateScan,
			Data:          map[string]interface{}{"flagged_pairs": flagged},
		})
	}
	logger.Debug(fmt.Sprintf("Duplicate scan finished for identity %s, flagged %d pair(s)", identityId, flagged))
}

func scanError(cause error) error {
	return errors.NewServerError(errors.ErrorMessage{
		Code:    errors.DUPLICATE_SCAN_FAILED.Code,
		Message: errors.DUPLICATE_SCAN_FAILED.Message,
	}, cause)
}

func filterDaemonRules(rules []rulesmodel.DuplicateRule) []rulesmodel.DuplicateRule {

	daemonRules := make([]rulesmodel.DuplicateRule, 0, len(rules))
	for _, rule := range rules {
		if rule.Daemon {
			daemonRules = append(daemonRules, rule)
		}
	}
	return daemonRules
}
