package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"laurel/internal/contract"
	"laurel/internal/domain"
	"laurel/internal/platform/middleware"
	id "laurel/pkg/domain"
	dErrors "laurel/pkg/domain-errors"
)

// Handler delegates to the contract service. It owns request decoding and
// response encoding only.
type Handler struct {
	contract *contract.Service
}

func NewHandler(c *contract.Service) *Handler {
	return &Handler{contract: c}
}

type createIdentityRequest struct {
	DID   string `json:"did"`
	Stake uint64 `json:"stake"`
}

type createIdentityResponse struct {
	DID string `json:"did"`
}

type applyActionRequest struct {
	Action   string `json:"action"`
	Evidence string `json:"evidence"`
}

type applyActionResponse struct {
	ReputationScore uint64 `json:"reputation_score"`
}

type createAttestationRequest struct {
	Target         string `json:"target"`
	Impact         int64  `json:"impact"`
	Type           string `json:"type"`
	DurationBlocks uint64 `json:"duration_blocks"`
}

type createProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	TargetValue uint64 `json:"target_value"`
}

type createProposalResponse struct {
	ProposalID uint64 `json:"proposal_id"`
}

type voteRequest struct {
	VoteFor bool `json:"vote_for"`
}

type updateActionConfigRequest struct {
	BaseMultiplier       uint64 `json:"base_multiplier"`
	MaxDailyApplications uint64 `json:"max_daily_applications"`
	RequiresVerification bool   `json:"requires_verification"`
	Enabled              bool   `json:"enabled"`
}

type profileResponse struct {
	Account           string `json:"account"`
	DID               string `json:"did"`
	ReputationScore   uint64 `json:"reputation_score"`
	WeightedScore     uint64 `json:"weighted_score"`
	StakedAmount      uint64 `json:"staked_amount"`
	ActivityCount     uint64 `json:"activity_count"`
	VerificationLevel uint64 `json:"verification_level"`
	AttestationBonus  int64  `json:"attestation_bonus"`
	CreatedAt         uint64 `json:"created_at"`
	LastUpdated       uint64 `json:"last_updated"`
}

type requirementsResponse struct {
	Meets bool `json:"meets"`
}

type proposalResponse struct {
	ID           uint64 `json:"id"`
	Proposer     string `json:"proposer"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Action       string `json:"action"`
	TargetValue  uint64 `json:"target_value"`
	VotesFor     uint64 `json:"votes_for"`
	VotesAgainst uint64 `json:"votes_against"`
	CreatedAt    uint64 `json:"created_at"`
	ExpiresAt    uint64 `json:"expires_at"`
	Executed     bool   `json:"executed"`
}

type statsResponse struct {
	TotalStaked   uint64 `json:"total_staked"`
	Paused        bool   `json:"paused"`
	ProposalCount uint64 `json:"proposal_count"`
	IdentityCount uint64 `json:"identity_count"`
	Height        uint64 `json:"height"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleCreateIdentity(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	var req createIdentityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	did, err := h.contract.CreateIdentity(r.Context(), caller, req.DID, req.Stake)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createIdentityResponse{DID: did.String()})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	profile, err := h.contract.Profile(r.Context(), account)
	if err != nil {
		writeError(w, err)
		return
	}
	if profile == nil {
		writeError(w, dErrors.New(dErrors.CodeNotFound, "identity not found"))
		return
	}
	writeJSON(w, http.StatusOK, profileResponse{
		Account:           profile.Account.String(),
		DID:               profile.DID.String(),
		ReputationScore:   profile.ReputationScore,
		WeightedScore:     profile.WeightedScore,
		StakedAmount:      profile.StakedAmount,
		ActivityCount:     profile.ActivityCount,
		VerificationLevel: profile.VerificationLevel,
		AttestationBonus:  profile.AttestationBonus,
		CreatedAt:         profile.CreatedAt,
		LastUpdated:       profile.LastUpdated,
	})
}

func (h *Handler) handleVerifyRequirements(w http.ResponseWriter, r *http.Request) {
	account, err := id.ParseAccountID(chi.URLParam(r, "account"))
	if err != nil {
		writeError(w, err)
		return
	}
	minBase, err := queryUint(r, "min_score")
	if err != nil {
		writeError(w, err)
		return
	}
	minWeighted, err := queryUint(r, "min_weighted")
	if err != nil {
		writeError(w, err)
		return
	}
	minVerification, err := queryUint(r, "min_verification")
	if err != nil {
		writeError(w, err)
		return
	}
	meets, err := h.contract.VerifyRequirements(r.Context(), account, minBase, minWeighted, minVerification)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requirementsResponse{Meets: meets})
}

func (h *Handler) handleApplyAction(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	var req applyActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	action, err := id.ParseActionType(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	evidence, err := id.ParseEvidenceHash(req.Evidence)
	if err != nil {
		writeError(w, err)
		return
	}
	score, err := h.contract.ApplyAction(r.Context(), caller, action, evidence)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applyActionResponse{ReputationScore: score})
}

func (h *Handler) handleCreateAttestation(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	var req createAttestationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	target, err := id.ParseAccountID(req.Target)
	if err != nil {
		writeError(w, err)
		return
	}
	attType, err := id.ParseAttestationType(req.Type)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.contract.CreateAttestation(r.Context(), caller, target, req.Impact, attType, req.DurationBlocks); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (h *Handler) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	var req createProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	action, err := id.ParseProposalAction(req.Action)
	if err != nil {
		writeError(w, err)
		return
	}
	proposalID, err := h.contract.CreateProposal(r.Context(), caller, req.Title, req.Description, action, req.TargetValue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createProposalResponse{ProposalID: proposalID})
}

func (h *Handler) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, err := pathUint(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	proposal, err := h.contract.Proposal(r.Context(), proposalID)
	if err != nil {
		writeError(w, err)
		return
	}
	if proposal == nil {
		writeError(w, dErrors.New(dErrors.CodeNotFound, "proposal not found"))
		return
	}
	writeJSON(w, http.StatusOK, proposalResponse{
		ID:           proposal.ID,
		Proposer:     proposal.Proposer.String(),
		Title:        proposal.Title,
		Description:  proposal.Description,
		Action:       proposal.Action.String(),
		TargetValue:  proposal.TargetValue,
		VotesFor:     proposal.VotesFor,
		VotesAgainst: proposal.VotesAgainst,
		CreatedAt:    proposal.CreatedAt,
		ExpiresAt:    proposal.ExpiresAt,
		Executed:     proposal.Executed,
	})
}

func (h *Handler) handleVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	proposalID, err := pathUint(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req voteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	if err := h.contract.Vote(r.Context(), caller, proposalID, req.VoteFor); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := h.contract.Stats()
	writeJSON(w, http.StatusOK, statsResponse{
		TotalStaked:   stats.TotalStaked,
		Paused:        stats.Paused,
		ProposalCount: stats.ProposalCount,
		IdentityCount: stats.IdentityCount,
		Height:        stats.Height,
	})
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	if err := h.contract.Pause(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "paused"})
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	if err := h.contract.Resume(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "active"})
}

func (h *Handler) handleInitializeActions(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	if err := h.contract.InitializeActions(r.Context(), caller); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "seeded"})
}

func (h *Handler) handleUpdateActionConfig(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, dErrors.New(dErrors.CodeUnauthorized, "no authenticated account"))
		return
	}
	actionType, err := id.ParseActionType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateActionConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeInvalidParameters, "invalid request body"))
		return
	}
	cfg := domain.ActionConfig{
		Type:                 actionType,
		BaseMultiplier:       req.BaseMultiplier,
		MaxDailyApplications: req.MaxDailyApplications,
		RequiresVerification: req.RequiresVerification,
		Enabled:              req.Enabled,
	}
	if err := h.contract.UpdateActionConfig(r.Context(), caller, cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func pathUint(r *http.Request, name string) (uint64, error) {
	value, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidParameters, "invalid %s", name)
	}
	return value, nil
}

func queryUint(r *http.Request, name string) (uint64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidParameters, "invalid %s", name)
	}
	return value, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler returns the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(code))
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(code),
	})
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidParameters, dErrors.CodeInvalidString, dErrors.CodeInvalidDuration:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeAlreadyExists:
		return http.StatusConflict
	case dErrors.CodeInsufficientReputation, dErrors.CodeInsufficientStake, dErrors.CodeInvalidAttestationImpact:
		return http.StatusUnprocessableEntity
	case dErrors.CodeRateLimited:
		return http.StatusTooManyRequests
	case dErrors.CodeProtocolPaused:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
