package handler

import (
	"net/http"

	"github.com/yndnr/pak-go/internal/core/service"
)

// handleIssueKeys handles POST /v1/keys.
func (h *Handler) handleIssueKeys(w http.ResponseWriter, r *http.Request) {
	var req IssueKeysRequest
	if err := h.decode(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	issued, err := h.keys.IssueBatch(r.Context(), req.Count)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	resp := IssueKeysResponse{Keys: make([]IssuedKeyResponse, 0, len(issued))}
	for _, k := range issued {
		resp.Keys = append(resp.Keys, IssuedKeyResponse{
			Key:        k.Key.FullString(),
			Prefix:     k.Key.Prefix(),
			ShortToken: k.Key.ShortToken(),
			Hash:       k.Hash,
		})
	}

	w.Header().Set("Cache-Control", "no-store")
	h.writeJSON(w, r, http.StatusCreated, resp)
}

// handleHashKey handles POST /v1/keys/hash.
func (h *Handler) handleHashKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := h.decode(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if req.Key == "" {
		h.handleServiceError(w, r, service.ErrInvalidArgument.WithDetails("key is required"))
		return
	}

	hash, err := h.keys.Hash(r.Context(), req.Key)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, HashKeyResponse{Hash: hash})
}

// handleVerifyKey handles POST /v1/keys/verify.
//
// A wrong hash is a normal answer, not an error: the response carries
// match=false with status 200.
func (h *Handler) handleVerifyKey(w http.ResponseWriter, r *http.Request) {
	var req VerifyKeyRequest
	if err := h.decode(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if req.Key == "" || req.Hash == "" {
		h.handleServiceError(w, r, service.ErrInvalidArgument.WithDetails("key and hash are required"))
		return
	}

	match, err := h.keys.Verify(r.Context(), req.Key, req.Hash)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, VerifyKeyResponse{Match: match})
}

// handleInspectKey handles POST /v1/keys/inspect.
func (h *Handler) handleInspectKey(w http.ResponseWriter, r *http.Request) {
	var req KeyRequest
	if err := h.decode(w, r, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	if req.Key == "" {
		h.handleServiceError(w, r, service.ErrInvalidArgument.WithDetails("key is required"))
		return
	}

	info, err := h.keys.Inspect(req.Key)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, info)
}
