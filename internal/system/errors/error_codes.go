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

package errors

const errorPrefix = "IRS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	ADD_ATTRIBUTE_DEFINITION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while adding attribute definition.",
	}

	FETCH_ATTRIBUTE_DEFINITIONS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching attribute definition(s).",
	}

	ADD_CERTIFICATION_MAPPING = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while adding certification level mapping.",
	}

	FETCH_CERTIFICATION_MAPPINGS = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching certification level mapping(s).",
	}

	ADD_DUPLICATE_RULE = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while adding duplicate rule.",
	}

	FETCH_DUPLICATE_RULES = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while fetching duplicate rule(s).",
	}

	UPDATE_DUPLICATE_RULE = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while updating duplicate rule.",
	}

	FETCH_IDENTITY_ATTRIBUTES = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching identity attributes.",
	}

	APPLY_ATTRIBUTE_DECISION = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while applying attribute write decision.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Parsing token failed.",
	}

	DUPLICATE_SCAN_FAILED = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while running duplicate scan.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}

	ATTRIBUTE_DEFINITION_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Attribute definition not found.",
		Description: "No attribute definition found for the given attribute key.",
	}

	ATTRIBUTE_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Attribute definition already exists.",
	}

	INVALID_ATTRIBUTE_VALUE = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Attribute value failed validation.",
	}

	DUPLICATE_RULE_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Duplicate rule not found.",
		Description: "No duplicate rule defined for the provided rule code.",
	}

	DUPLICATE_RULE_INVALID = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Duplicate rule definition is invalid.",
	}

	DUPLICATE_RULE_ALREADY_EXISTS = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Duplicate rule with the same code already exists.",
	}

	IDENTITY_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11010",
		Message:     "Identity not found.",
		Description: "No identity record found for the given identity_id.",
	}

	CERTIFICATION_MAPPING_EXISTS = ErrorMessage{
		Code:        errorPrefix + "11011",
		Message:     "Certification mapping already exists.",
		Description: "A mapping for this certification process and attribute key is already active.",
	}

	ONLY_PARTIAL_UPDATE_POSSIBLE = ErrorMessage{
		Code:    errorPrefix + "11012",
		Message: "Validation failed for duplicate rule update.",
	}

	CERTIFICATION_MAPPING_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11013",
		Message:     "Certification mapping not found.",
		Description: "No active mapping found for the certification process and attribute key.",
	}
)
