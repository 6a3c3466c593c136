package handlers

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"

	"github.com/orally-network/price-oracle/internal/merkletree"
	"github.com/orally-network/price-oracle/internal/registry"
)

// OracleHandler is the thin read-only surface over the snapshot
// engine and chain registry: it owns no business logic and never
// mutates either collaborator.
type OracleHandler struct {
	store    *merkletree.Store
	registry *registry.Registry
	logger   lgr.L
}

// NewOracleHandler returns an OracleHandler over store and reg.
func NewOracleHandler(store *merkletree.Store, reg *registry.Registry, logger lgr.L) *OracleHandler {
	return &OracleHandler{store: store, registry: reg, logger: logger}
}

// SnapshotResponse describes the current committed root.
type SnapshotResponse struct {
	CommittedRoot string `json:"committed_root"`
	LeafCount     int    `json:"leaf_count"`
}

// HandleSnapshot returns the current committed root and leaf count.
//
// @Summary Current snapshot
// @Description Returns the oracle's last committed root
// @Tags oracle
// @Produce json
// @Success 200 {object} SnapshotResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/snapshot [get]
func (h *OracleHandler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	root, ok := h.store.Root()
	if !ok {
		writeErrorResponse(w, ErrNoCommittedRoot, "no snapshot has been committed yet")
		return
	}

	writeJSON(w, http.StatusOK, SnapshotResponse{
		CommittedRoot: "0x" + hex.EncodeToString(root[:]),
		LeafCount:     h.store.Len(),
	})
}

// AssetResponse is an AssetData together with a Merkle proof against
// the committed root.
type AssetResponse struct {
	Symbol        string   `json:"symbol"`
	Price         string   `json:"price"`
	Timestamp     string   `json:"timestamp"`
	Decimals      uint8    `json:"decimals"`
	Proof         []string `json:"proof"`
	CommittedRoot string   `json:"committed_root"`
}

// HandleAsset returns the committed AssetData for a symbol, its
// Merkle proof, and the root it verifies against.
//
// @Summary Asset price with proof
// @Description Returns the committed AssetData and Merkle proof for a symbol
// @Tags oracle
// @Produce json
// @Param symbol path string true "trading pair symbol, e.g. BTC/USD"
// @Success 200 {object} AssetResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/assets/{symbol} [get]
func (h *OracleHandler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	data, ok := h.store.Get(symbol)
	if !ok {
		writeErrorResponse(w, ErrUnknownSymbol, "unknown symbol: "+symbol)
		return
	}

	root, ok := h.store.Root()
	if !ok {
		writeErrorResponse(w, ErrNoCommittedRoot, "no snapshot has been committed yet")
		return
	}

	proof, ok := h.store.Prove(symbol)
	if !ok {
		writeErrorResponse(w, ErrUnknownSymbol, "unknown symbol: "+symbol)
		return
	}

	proofHex := make([]string, len(proof))
	for i, p := range proof {
		proofHex[i] = "0x" + hex.EncodeToString(p[:])
	}

	writeJSON(w, http.StatusOK, AssetResponse{
		Symbol:        data.Symbol,
		Price:         data.Price.String(),
		Timestamp:     data.Timestamp.String(),
		Decimals:      data.Decimals,
		Proof:         proofHex,
		CommittedRoot: "0x" + hex.EncodeToString(root[:]),
	})
}

// SubscriptionResponse is the operator-facing view of one
// subscription.
type SubscriptionResponse struct {
	ID              string `json:"id"`
	ChainID         uint64 `json:"chain_id"`
	Address         string `json:"address"`
	Active          bool   `json:"active"`
	ContractAddress string `json:"contract_address"`
}

// HandleChainSubscriptions lists the subscriptions registered on a
// chain.
//
// @Summary Chain subscriptions
// @Description Lists the subscriptions registered on a chain
// @Tags oracle
// @Produce json
// @Param chainId path int true "chain id"
// @Success 200 {array} SubscriptionResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/chains/{chainId}/subscriptions [get]
func (h *OracleHandler) HandleChainSubscriptions(w http.ResponseWriter, r *http.Request) {
	chainIDStr := r.PathValue("chainId")
	chainID, err := strconv.ParseUint(chainIDStr, 10, 64)
	if err != nil {
		writeErrorResponse(w, ErrInvalidChainID, "invalid chain id: "+chainIDStr)
		return
	}

	chain, ok := h.registry.Chain(chainID)
	if !ok {
		writeErrorResponse(w, ErrChainNotFound, "unknown chain id: "+chainIDStr)
		return
	}

	subs := chain.Subscriptions()
	out := make([]SubscriptionResponse, len(subs))
	for i, s := range subs {
		out[i] = SubscriptionResponse{
			ID:              s.ID,
			ChainID:         s.ChainID,
			Address:         s.Address,
			Active:          s.Active,
			ContractAddress: s.ContractAddress,
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
