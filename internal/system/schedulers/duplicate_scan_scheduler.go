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

package schedulers

import (
	"github.com/openiam/identity-registry-service/internal/system/config"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/openiam/identity-registry-service/internal/system/workers"
	"github.com/robfig/cron/v3"
)

var scanCron *cron.Cron

// StartDuplicateScanScheduler schedules the periodic full registry scan when
// it is enabled in the configuration. The schedule is a standard cron
// expression, e.g. "0 2 * * *" for a nightly scan.
func StartDuplicateScanScheduler() error {

	logger := log.GetLogger()
	scanConfig := config.GetIRSRuntime().Config.DuplicateScan
	if !scanConfig.Enabled {
		logger.Info("Scheduled duplicate scan is disabled.")
		return nil
	}

	scanCron = cron.New()
	_, err := scanCron.AddFunc(scanConfig.Schedule, func() {
		logger.Info("Starting scheduled duplicate scan of the registry.")
		if err := workers.EnqueueAllIdentities(); err != nil {
			logger.Error("Scheduled duplicate scan failed to enqueue identities.", log.Error(err))
		}
	})
	if err != nil {
		return err
	}

	scanCron.Start()
	logger.Info("Duplicate scan scheduler started with schedule: " + scanConfig.Schedule)
	return nil
}

// StopDuplicateScanScheduler stops the scheduler, waiting for a running scan
// enqueue to finish.
func StopDuplicateScanScheduler() {
	if scanCron != nil {
		ctx := scanCron.Stop()
		<-ctx.Done()
	}
}
