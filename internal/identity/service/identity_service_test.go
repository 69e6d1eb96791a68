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
	"time"

	schemamodel "github.com/openiam/identity-registry-service/internal/attribute_schema/model"
	"github.com/openiam/identity-registry-service/internal/identity/model"
	"github.com/openiam/identity-registry-service/internal/system/constants"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

func TestToProposedAttributeKeepsCertificateForCertifiableAttribute(t *testing.T) {

	certificationDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	proposed := model.ProposedAttributeWrite{
		AttributeKey:      "birth_date",
		Value:             "1990-04-12",
		ProcessCode:       "passport_check",
		ProcessName:       "Passport Check",
		CertificationDate: &certificationDate,
	}
	definition := schemamodel.AttributeDefinition{
		AttributeKey: "birth_date",
		ValueType:    constants.ValueTypeDate,
		Certifiable:  true,
	}

	incoming := toProposedAttribute(proposed, definition)
	require.NotNil(t, incoming.Certificate)
	assert.Equal(t, "passport_check", incoming.Certificate.ProcessCode)
	assert.Equal(t, certificationDate, incoming.Certificate.CertificationDate)
}

func TestToProposedAttributeStripsCertificateForNonCertifiableAttribute(t *testing.T) {

	proposed := model.ProposedAttributeWrite{
		AttributeKey: "nickname",
		Value:        "JD",
		ProcessCode:  "passport_check",
	}
	definition := schemamodel.AttributeDefinition{
		AttributeKey: "nickname",
		ValueType:    constants.ValueTypeString,
		Certifiable:  false,
	}

	incoming := toProposedAttribute(proposed, definition)
	assert.Nil(t, incoming.Certificate)
}

func TestToProposedAttributeDefaultsCertificationDate(t *testing.T) {

	proposed := model.ProposedAttributeWrite{
		AttributeKey: "birth_date",
		Value:        "1990-04-12",
		ProcessCode:  "passport_check",
	}
	definition := schemamodel.AttributeDefinition{
		AttributeKey: "birth_date",
		ValueType:    constants.ValueTypeDate,
		Certifiable:  true,
	}

	before := time.Now().UTC()
	incoming := toProposedAttribute(proposed, definition)
	require.NotNil(t, incoming.Certificate)
	assert.False(t, incoming.Certificate.CertificationDate.Before(before))
}

func TestToCurrentAttribute(t *testing.T) {

	certificationDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	current := model.AttributeValue{
		AttributeKey:      "birth_date",
		Value:             "1990-04-12",
		ProcessCode:       "passport_check",
		CertificationDate: &certificationDate,
	}

	existing := toCurrentAttribute(current)
	require.NotNil(t, existing.Certificate)
	assert.Equal(t, "1990-04-12", existing.Value)
	assert.Equal(t, certificationDate, existing.Certificate.CertificationDate)

	uncertified := toCurrentAttribute(model.AttributeValue{AttributeKey: "email", Value: "a@b.c"})
	assert.Nil(t, uncertified.Certificate)
}
