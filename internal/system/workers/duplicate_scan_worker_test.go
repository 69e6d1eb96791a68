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
	"testing"

	rulesmodel "github.com/openiam/identity-registry-service/internal/duplicate_rules/model"
	errors2 "github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func TestScanErrorCarriesScanFailureCode(t *testing.T) {

	err := scanError(errors.New("connection refused"))

	var serverError *errors2.ServerError
	require.True(t, errors.As(err, &serverError))
	assert.Equal(t, errors2.DUPLICATE_SCAN_FAILED.Code, serverError.Code)
}

func TestFilterDaemonRules(t *testing.T) {

	rules := []rulesmodel.DuplicateRule{
		{Code: "on_demand", Daemon: false},
		{Code: "nightly", Daemon: true},
	}

	daemonRules := filterDaemonRules(rules)
	require.Len(t, daemonRules, 1)
	assert.Equal(t, "nightly", daemonRules[0].Code)
}

func TestEnqueueWithoutRunningWorkerIsANoOp(t *testing.T) {
	DuplicateScanQueue = nil
	EnqueueIdentityForScan("identity-1")
}
