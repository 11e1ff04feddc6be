package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ledgerbridge/ledgerbridge/internal/model"
	"github.com/ledgerbridge/ledgerbridge/internal/provider"
	"github.com/ledgerbridge/ledgerbridge/internal/reconcile"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type linkSessionRequest struct {
	UserID      string `json:"user_id"`
	HistoryDays int    `json:"history_days"`
}

type linkSessionResponse struct {
	LinkToken string `json:"link_token"`
}

type exchangeRequest struct {
	PublicToken string `json:"public_token"`
}

type transactionsResponse struct {
	Records  []model.Transaction `json:"records"`
	Total    int                 `json:"total"`
	Coverage *reconcile.Coverage `json:"coverage"`
}

type notReadyResponse struct {
	Status            string `json:"status"`
	RetryAfterSeconds int    `json:"retry_after_seconds"`
}

func (s *Server) handleCreateLinkSession(w http.ResponseWriter, r *http.Request) {
	var req linkSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "request body must be JSON")
		return
	}

	linkToken, err := s.gateway.CreateLinkSession(r.Context(), req.UserID, req.HistoryDays)
	if err != nil {
		s.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, linkSessionResponse{LinkToken: linkToken})
}

func (s *Server) handleExchangePublicToken(w http.ResponseWriter, r *http.Request) {
	var req exchangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", "request body must be JSON")
		return
	}

	result, err := s.gateway.ExchangePublicToken(r.Context(), req.PublicToken)
	if err != nil {
		s.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accessToken := r.URL.Query().Get("access_token")

	result, err := s.gateway.ListAccounts(r.Context(), accessToken)
	if err != nil {
		s.writeGatewayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	req, err := parseTransactionsRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	outcome := s.reconciler.Retrieve(r.Context(), req)

	switch outcome.Status {
	case reconcile.StatusSuccess:
		writeJSON(w, http.StatusOK, transactionsResponse{
			Records:  outcome.Records,
			Total:    outcome.Total,
			Coverage: outcome.Coverage,
		})

	case reconcile.StatusNotReady:
		seconds := int(outcome.RetryAfter.Seconds())
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeJSON(w, http.StatusAccepted, notReadyResponse{
			Status:            string(reconcile.StatusNotReady),
			RetryAfterSeconds: seconds,
		})

	case reconcile.StatusFailure:
		writeError(w, statusForFailure(outcome), string(outcome.Class), outcome.Message)
	}
}

func parseTransactionsRequest(r *http.Request) (reconcile.Request, error) {
	q := r.URL.Query()

	req := reconcile.Request{
		AccessToken: q.Get("access_token"),
		AccountID:   q.Get("account_id"),
	}

	if v := q.Get("start"); v != "" {
		start, err := model.ParseDate(v)
		if err != nil {
			return reconcile.Request{}, err
		}
		req.Window.Start = start
	}
	if v := q.Get("end"); v != "" {
		end, err := model.ParseDate(v)
		if err != nil {
			return reconcile.Request{}, err
		}
		req.Window.End = end
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return reconcile.Request{}, fmt.Errorf("invalid limit %q", v)
		}
		req.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return reconcile.Request{}, fmt.Errorf("invalid offset %q", v)
		}
		req.Offset = offset
	}

	return req, nil
}

// statusForFailure picks the HTTP status for a failure outcome, mirroring the
// provider's own status for transient classes so callers can drive backoff.
func statusForFailure(outcome reconcile.Outcome) int {
	if outcome.Class == reconcile.ClassInvalidArgument {
		return http.StatusBadRequest
	}
	if outcome.ProviderStatus >= 400 {
		return outcome.ProviderStatus
	}
	switch outcome.Class {
	case reconcile.ClassRateLimited:
		return http.StatusTooManyRequests
	case reconcile.ClassInvalidCredential:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

// writeGatewayError renders a raw gateway error for the non-reconciled
// endpoints, relaying the provider's status and code where known.
func (s *Server) writeGatewayError(w http.ResponseWriter, err error) {
	if errors.Is(err, provider.ErrInvalidArgument) {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	if provErr := provider.AsError(err); provErr != nil {
		status := provErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		writeError(w, status, provErr.Code, provErr.Message)
		return
	}

	s.logger.Error("Gateway call failed", "error", err)
	writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorResponse{Error: kind, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
