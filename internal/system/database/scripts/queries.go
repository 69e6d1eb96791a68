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

package scripts

var InsertAttributeDefinition = map[string]string{
	"postgres": `INSERT INTO attribute_definitions (attribute_key, display_name, value_type, certifiable, pivot,
		mandatory_for_creation, weight, validation_pattern, common_search_key_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
}

var GetAttributeDefinitions = map[string]string{
	"postgres": `SELECT attribute_key, display_name, value_type, certifiable, pivot, mandatory_for_creation,
		weight, validation_pattern, common_search_key_name, created_at, updated_at FROM attribute_definitions`,
}

var GetAttributeDefinition = map[string]string{
	"postgres": `SELECT attribute_key, display_name, value_type, certifiable, pivot, mandatory_for_creation,
		weight, validation_pattern, common_search_key_name, created_at, updated_at FROM attribute_definitions
		WHERE attribute_key = $1`,
}

var UpdateAttributeDefinition = map[string]string{
	"postgres": `UPDATE attribute_definitions SET display_name = $2, value_type = $3, certifiable = $4,
		pivot = $5, mandatory_for_creation = $6, weight = $7, validation_pattern = $8,
		common_search_key_name = $9, updated_at = $10 WHERE attribute_key = $1`,
}

var DeleteAttributeDefinition = map[string]string{
	"postgres": `DELETE FROM attribute_definitions WHERE attribute_key = $1`,
}

var InsertCertificationMapping = map[string]string{
	"postgres": `INSERT INTO certification_mappings (mapping_id, process_code, attribute_key, level, active)
		VALUES ($1, $2, $3, $4, $5)`,
}

var GetCertificationMapping = map[string]string{
	"postgres": `SELECT m.mapping_id, m.process_code, p.label, m.attribute_key, m.level
		FROM certification_mappings m JOIN certification_processes p ON p.process_code = m.process_code
		WHERE m.process_code = $1 AND m.attribute_key = $2 AND m.active = TRUE`,
}

var GetCertificationMappings = map[string]string{
	"postgres": `SELECT m.mapping_id, m.process_code, p.label, m.attribute_key, m.level
		FROM certification_mappings m JOIN certification_processes p ON p.process_code = m.process_code
		WHERE m.active = TRUE`,
}

var DeactivateCertificationMapping = map[string]string{
	"postgres": `UPDATE certification_mappings SET active = FALSE WHERE process_code = $1 AND attribute_key = $2`,
}

var InsertCertificationProcess = map[string]string{
	"postgres": `INSERT INTO certification_processes (process_code, label) VALUES ($1, $2)
		ON CONFLICT (process_code) DO UPDATE SET label = EXCLUDED.label`,
}

var InsertDuplicateRule = map[string]string{
	"postgres": `INSERT INTO duplicate_rules (rule_id, name, code, description, nb_filled_attributes,
		nb_equal_attributes, nb_missing_attributes, priority, active, daemon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
}

var GetDuplicateRuleByCode = map[string]string{
	"postgres": `SELECT rule_id, name, code, description, nb_filled_attributes, nb_equal_attributes,
		nb_missing_attributes, priority, active, daemon, created_at, updated_at FROM duplicate_rules
		WHERE code = $1`,
}

var GetActiveDuplicateRules = map[string]string{
	"postgres": `SELECT rule_id, name, code, description, nb_filled_attributes, nb_equal_attributes,
		nb_missing_attributes, priority, active, daemon, created_at, updated_at FROM duplicate_rules
		WHERE active = TRUE ORDER BY priority ASC`,
}

var DeleteDuplicateRule = map[string]string{
	"postgres": `DELETE FROM duplicate_rules WHERE rule_id = $1`,
}

var InsertDuplicateRuleCheckedAttribute = map[string]string{
	"postgres": `INSERT INTO duplicate_rule_checked_attributes (rule_id, attribute_key) VALUES ($1, $2)`,
}

var GetDuplicateRuleCheckedAttributes = map[string]string{
	"postgres": `SELECT attribute_key FROM duplicate_rule_checked_attributes WHERE rule_id = $1 ORDER BY attribute_key`,
}

var DeleteDuplicateRuleCheckedAttributes = map[string]string{
	"postgres": `DELETE FROM duplicate_rule_checked_attributes WHERE rule_id = $1`,
}

var InsertDuplicateRuleTreatment = map[string]string{
	"postgres": `INSERT INTO duplicate_rule_treatments (treatment_id, rule_id, treatment_type) VALUES ($1, $2, $3)`,
}

var GetDuplicateRuleTreatments = map[string]string{
	"postgres": `SELECT treatment_id, treatment_type FROM duplicate_rule_treatments WHERE rule_id = $1`,
}

var DeleteDuplicateRuleTreatments = map[string]string{
	"postgres": `DELETE FROM duplicate_rule_treatments WHERE rule_id = $1`,
}

var InsertDuplicateRuleTreatmentAttribute = map[string]string{
	"postgres": `INSERT INTO duplicate_rule_treatment_attributes (treatment_id, attribute_key) VALUES ($1, $2)`,
}

var GetDuplicateRuleTreatmentAttributes = map[string]string{
	"postgres": `SELECT attribute_key FROM duplicate_rule_treatment_attributes WHERE treatment_id = $1 ORDER BY attribute_key`,
}

var DeleteDuplicateRuleTreatmentAttributes = map[string]string{
	"postgres": `DELETE FROM duplicate_rule_treatment_attributes WHERE treatment_id IN
		(SELECT treatment_id FROM duplicate_rule_treatments WHERE rule_id = $1)`,
}

var InsertIdentity = map[string]string{
	"postgres": `INSERT INTO identities (identity_id, duplicate_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4) ON CONFLICT (identity_id) DO NOTHING`,
}

var GetIdentity = map[string]string{
	"postgres": `SELECT identity_id, duplicate_state, created_at, updated_at FROM identities WHERE identity_id = $1`,
}

var GetIdentityIds = map[string]string{
	"postgres": `SELECT identity_id FROM identities WHERE duplicate_state != 'MERGED' ORDER BY identity_id`,
}

var GetIdentityAttributes = map[string]string{
	"postgres": `SELECT attribute_key, attribute_value, process_code, process_name, certification_date,
		expiration_date, updated_by FROM identity_attributes WHERE identity_id = $1`,
}

var UpsertIdentityAttribute = map[string]string{
	"postgres": `INSERT INTO identity_attributes (identity_id, attribute_key, attribute_value, process_code,
		process_name, certification_date, expiration_date, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (identity_id, attribute_key) DO UPDATE SET attribute_value = EXCLUDED.attribute_value,
		process_code = EXCLUDED.process_code, process_name = EXCLUDED.process_name,
		certification_date = EXCLUDED.certification_date, expiration_date = EXCLUDED.expiration_date,
		updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at`,
}

var DeleteIdentityAttribute = map[string]string{
	"postgres": `DELETE FROM identity_attributes WHERE identity_id = $1 AND attribute_key = $2`,
}

var InsertAttributeCertificate = map[string]string{
	"postgres": `INSERT INTO attribute_certificates (certificate_id, identity_id, attribute_key, process_code,
		process_name, certification_date, expiration_date, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
}

var InsertSuspectedDuplicate = map[string]string{
	"postgres": `INSERT INTO suspected_duplicates (pair_id, identity_id_a, identity_id_b, rule_code, detected_at)
		VALUES ($1, $2, $3, $4, $5) ON CONFLICT (identity_id_a, identity_id_b, rule_code) DO NOTHING`,
}

var UpdateIdentityDuplicateState = map[string]string{
	"postgres": `UPDATE identities SET duplicate_state = $2, updated_at = $3 WHERE identity_id = $1`,
}
