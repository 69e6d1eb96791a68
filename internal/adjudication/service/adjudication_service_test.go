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

	"github.com/openiam/identity-registry-service/internal/adjudication/model"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("ERROR")
	m.Run()
}

// levels used across the tests: passport_check=3, utility_bill=1, everything else 0.
func testResolver(processCode, attributeKey string) (int64, error) {
	switch processCode {
	case "passport_check":
		return 3, nil
	case "utility_bill":
		return 1, nil
	default:
		return 0, nil
	}
}

func certAt(processCode string, date time.Time) *model.Certificate {
	return &model.Certificate{ProcessCode: processCode, CertificationDate: date}
}

func TestAdjudicateCreatesMissingAttribute(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	incoming := model.ProposedAttribute{AttributeKey: "birth_date", Value: "1990-04-12"}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, nil)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionCreated, outcome.Decision)
	assert.Equal(t, model.StatusCreated, outcome.Status)
}

func TestAdjudicateRejectsLowerLevelWrite(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("passport_check", time.Now()),
	}
	incoming := model.ProposedAttribute{
		AttributeKey: "birth_date",
		Value:        "1991-01-01",
		Certificate:  certAt("utility_bill", time.Now()),
	}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionRejected, outcome.Decision)
	assert.Equal(t, model.StatusInsufficientCertLevel, outcome.Status)
}

func TestAdjudicateAcceptsEqualLevelWrite(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("passport_check", time.Now().Add(-time.Hour)),
	}
	incoming := model.ProposedAttribute{
		AttributeKey: "birth_date",
		Value:        "1991-01-01",
		Certificate:  certAt("passport_check", time.Now()),
	}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionUpdated, outcome.Decision)
	assert.Equal(t, model.StatusUpdated, outcome.Status)
}

func TestAdjudicateAcceptsHigherLevelWrite(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("utility_bill", time.Now()),
	}
	incoming := model.ProposedAttribute{
		AttributeKey: "birth_date",
		Value:        "1991-01-01",
		Certificate:  certAt("passport_check", time.Now()),
	}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionUpdated, outcome.Decision)
}

func TestAdjudicateUncertifiedWriteAgainstUncertifiedValue(t *testing.T) {

	// Both sides carry the default level 0, so the incoming write wins.
	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{Value: "old@example.org"}
	incoming := model.ProposedAttribute{AttributeKey: "email", Value: "new@example.org"}

	outcome, err := engine.Adjudicate("email", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionUpdated, outcome.Decision)
}

func TestAdjudicateNoChangeForIdenticalReplay(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	certDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("passport_check", certDate),
	}

	// Same value, same level, same certification date.
	incoming := model.ProposedAttribute{
		AttributeKey: "birth_date",
		Value:        "1990-04-12",
		Certificate:  certAt("passport_check", certDate),
	}
	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoChange, outcome.Decision)
	assert.Equal(t, model.StatusNotUpdated, outcome.Status)

	// An older replay of the same value is also a no-op.
	incoming.Certificate = certAt("passport_check", certDate.Add(-24*time.Hour))
	outcome, err = engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionNoChange, outcome.Decision)
}

func TestAdjudicateFresherCertificateForSameValueUpdates(t *testing.T) {

	// Same value and level but a newer certification date refreshes the certificate.
	engine := GetAdjudicationService(testResolver)
	certDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("passport_check", certDate),
	}
	incoming := model.ProposedAttribute{
		AttributeKey: "birth_date",
		Value:        "1990-04-12",
		Certificate:  certAt("passport_check", certDate.Add(24*time.Hour)),
	}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionUpdated, outcome.Decision)
}

func TestAdjudicateBlankValueRemovesOptionalAttribute(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{Value: "some value"}
	incoming := model.ProposedAttribute{AttributeKey: "nickname", Value: "   "}

	outcome, err := engine.Adjudicate("nickname", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionRemoved, outcome.Decision)
	assert.Equal(t, model.StatusRemoved, outcome.Status)
}

func TestAdjudicateBlankValueCannotRemoveMandatoryAttribute(t *testing.T) {

	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{Value: "Doe"}
	incoming := model.ProposedAttribute{AttributeKey: "last_name", Value: ""}

	outcome, err := engine.Adjudicate("last_name", true, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionRejected, outcome.Decision)
	assert.Equal(t, model.StatusNotRemoved, outcome.Status)
}

func TestAdjudicateBlankRemovalStillRequiresSufficientLevel(t *testing.T) {

	// Removal is a write like any other: a level-0 blank cannot clear a
	// value certified at level 3.
	engine := GetAdjudicationService(testResolver)
	existing := &model.CurrentAttribute{
		Value:       "1990-04-12",
		Certificate: certAt("passport_check", time.Now()),
	}
	incoming := model.ProposedAttribute{AttributeKey: "birth_date", Value: ""}

	outcome, err := engine.Adjudicate("birth_date", false, incoming, existing)
	require.NoError(t, err)
	assert.Equal(t, model.DecisionRejected, outcome.Decision)
	assert.Equal(t, model.StatusInsufficientCertLevel, outcome.Status)
}
