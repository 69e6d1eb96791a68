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

package utils

import (
	"encoding/json"
	"net/http"

	errors2 "github.com/openiam/identity-registry-service/internal/system/errors"
	"github.com/openiam/identity-registry-service/internal/system/log"
	"github.com/pkg/errors"
)

// HandleError writes the appropriate HTTP response for the given error.
func HandleError(w http.ResponseWriter, err error) {

	logger := log.GetLogger()

	var clientError *errors2.ClientError
	if errors.As(err, &clientError) {
		WriteErrorResponse(w, clientError.StatusCode, clientError.ErrorMessage)
		return
	}

	var serverError *errors2.ServerError
	if errors.As(err, &serverError) {
		logger.Error("Server error while processing the request.", log.Error(serverError.Err))
		WriteErrorResponse(w, http.StatusInternalServerError, serverError.ErrorMessage)
		return
	}

	logger.Error("Unexpected error while processing the request.", log.Error(err))
	WriteErrorResponse(w, http.StatusInternalServerError, errors2.ErrorMessage{
		Code:        "IRS-15000",
		Message:     "Internal server error",
		Description: "An unexpected error occurred while processing the request",
	})
}

// WriteErrorResponse writes an error message as a JSON response with the given status code.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, errorMessage errors2.ErrorMessage) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorMessage); err != nil {
		log.GetLogger().Error("Error encoding error response.", log.Error(err))
	}
}

// RespondJSON writes the payload as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Error("Error encoding response body.", log.Error(err))
	}
}
