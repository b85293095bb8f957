// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package gateway

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	mailmind "github.com/poiesic/mailmind"
	"github.com/poiesic/mailmind/mailbox"
	"github.com/poiesic/mailmind/storage"
)

const defaultListLimit = 50

// Handler holds API route handlers.
type Handler struct {
	sys *mailmind.System
}

// NewHandler creates a new Handler.
func NewHandler(sys *mailmind.System) *Handler {
	return &Handler{sys: sys}
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMail handles GET /mail, returning the most recent archived mail.
func (h *Handler) ListMail(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := h.sys.MailRepository().GetRecentMailRecords(r.Context(), limit)
	if err != nil {
		slog.Error("list mail failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"mail":  records,
		"count": len(records),
	})
}

// GetMail handles GET /mail/{id}.
func (h *Handler) GetMail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	record, err := h.sys.MailRepository().GetMailRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
		} else {
			slog.Error("get mail failed", slog.String("id", id), slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeData(w, http.StatusOK, record)
}

// Search handles GET /search?q=...&k=...
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}

	k, _ := strconv.Atoi(r.URL.Query().Get("k"))
	if k <= 0 {
		k = 5
	}

	results, err := h.sys.Search(r.Context(), query, k)
	if err != nil {
		slog.Error("search failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

// Ask handles POST /ask with body {"question": "..."}.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := h.sys.Ask(r.Context(), req.Question)
	if err != nil {
		slog.Error("ask failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, answer)
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.sys.Stats(r.Context())
	if err != nil {
		slog.Error("stats failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, stats)
}

// RebuildIndex handles POST /index/rebuild.
func (h *Handler) RebuildIndex(w http.ResponseWriter, r *http.Request) {
	indexed, err := h.sys.RebuildIndex(r.Context())
	if err != nil {
		slog.Error("rebuild failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"indexed": indexed})
}

// TestNotification handles POST /notify/test.
func (h *Handler) TestNotification(w http.ResponseWriter, r *http.Request) {
	if !h.sys.Dispatcher().SendTest(r.Context()) {
		writeError(w, http.StatusInternalServerError, "notification delivery failed")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Send handles POST /send with body {"to": [...], "subject": "...", "body": "..."}.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req struct {
		To      []string `json:"to"`
		Subject string   `json:"subject"`
		Body    string   `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.To) == 0 {
		writeError(w, http.StatusBadRequest, "to is required")
		return
	}

	msg := &mailbox.OutgoingMail{To: req.To, Subject: req.Subject, Body: req.Body}
	if err := h.sys.SendMail(r.Context(), msg); err != nil {
		slog.Error("send failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "send failed")
		return
	}
	writeData(w, http.StatusOK, map[string]string{"status": "sent"})
}
