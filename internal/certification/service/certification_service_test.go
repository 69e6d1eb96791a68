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
	"testing"

	"github.com/openiam/identity-registry-service/internal/certification/model"
	errors2 "github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func TestValidateMappingRequest(t *testing.T) {

	valid := model.CertificationMappingRequest{
		ProcessCode:  "passport_check",
		ProcessName:  "Passport Check",
		AttributeKey: "birth_date",
		Level:        3,
	}
	require.NoError(t, validateMappingRequest(valid))

	tests := []struct {
		name   string
		mutate func(r *model.CertificationMappingRequest)
	}{
		{"empty process code", func(r *model.CertificationMappingRequest) { r.ProcessCode = "" }},
		{"empty attribute key", func(r *model.CertificationMappingRequest) { r.AttributeKey = "  " }},
		{"negative level", func(r *model.CertificationMappingRequest) { r.Level = -1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := valid
			tc.mutate(&request)
			err := validateMappingRequest(request)
			require.Error(t, err)
			var clientError *errors2.ClientError
			require.ErrorAs(t, err, &clientError)
			assert.Equal(t, errors2.BAD_REQUEST.Code, clientError.ErrorMessage.Code)
		})
	}
}

func TestResolveLevelFromCache(t *testing.T) {

	certificationService := GetCertificationService()
	mapping := model.CertificationMapping{
		MappingId:    "m-1",
		ProcessCode:  "passport_check",
		ProcessName:  "Passport Check",
		AttributeKey: "birth_date",
		Level:        3,
	}
	referentialCache.Set(referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey), mapping)
	defer referentialCache.Invalidate(referentialCacheKey(mapping.ProcessCode, mapping.AttributeKey))

	level, err := certificationService.ResolveLevel("passport_check", "birth_date")
	require.NoError(t, err)
	assert.Equal(t, int64(3), level)
}

func TestResolveLevelDefaultsToZeroForEmptyProcess(t *testing.T) {

	certificationService := GetCertificationService()

	// An uncertified write carries no process, which always maps to level 0.
	level, err := certificationService.ResolveLevel("", "birth_date")
	require.NoError(t, err)
	assert.Equal(t, int64(0), level)
}

func TestReferentialCacheKey(t *testing.T) {
	assert.Equal(t, "passport_check::birth_date", referentialCacheKey("passport_check", "birth_date"))
}
