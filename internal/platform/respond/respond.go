// Copyright (c) 2026 Dramatis. All rights reserved.
// Author: tamsin.leach.uk@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Instance documents are written as plain JSON with a 200 status — including
// documents that carry validation error bags, since validation failures are
// data, not HTTP errors. Only two error paths exist: 404 for unresolved
// uuids (no body) and 5xx for infrastructure failures.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tamsinleach/dramatis/internal/platform/apperr"
	"github.com/tamsinleach/dramatis/internal/platform/ctxutil"
)

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with the document as the raw JSON body.
func OK(writer http.ResponseWriter, document interface{}) {
	JSON(writer, http.StatusOK, document)
}

// Error converts any Go error into the appropriate HTTP error response.
//
// Not-found errors produce a bare 404 with no body. Everything else is
// treated as an infrastructure failure: logged with full detail and
// surfaced as a generic JSON 5xx payload.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		logger := ctxutil.GetLogger(request.Context())
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	// Unresolved uuids are surfaced as a status-only response.
	if appError.HTTPStatus == http.StatusNotFound {
		writer.WriteHeader(http.StatusNotFound)
		return
	}

	JSON(writer, appError.HTTPStatus, map[string]string{
		"code":  appError.Code,
		"error": appError.Message,
	})
}
