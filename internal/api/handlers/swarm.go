package handlers

import (
	"net/http"

	"github.com/rohits-web03/minitracker/internal/api/middleware"
	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/swarm"
	"github.com/rohits-web03/minitracker/internal/utils"
)

type joinRequest struct {
	FileID     string `json:"fileId"`
	ClientName string `json:"clientName"`
	Status     string `json:"status"`
}

type leaveRequest struct {
	PeerID string `json:"peerId"`
}

// POST /api/v1/tracker/join
// Join godoc
// @Summary Join a swarm
// @Description Adds a seeder or leecher to a file's swarm.
// @Tags Tracker
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Acting user id"
// @Param body body joinRequest true "Peer to add"
// @Success 201 {object} utils.Payload{data=models.Peer}
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload "File not found"
// @Router /api/v1/tracker/join [post]
func (h *Tracker) Join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid input")
		return
	}
	fileID, err := parseOptionalID(req.FileID)
	if err != nil {
		badRequest(w, "Invalid fileId")
		return
	}

	peer, err := h.svc.Join(r.Context(), swarm.JoinInput{
		FileID:     fileID,
		UserID:     middleware.UserIDFrom(r.Context()),
		ClientName: req.ClientName,
		Status:     models.PeerStatus(req.Status),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Joined swarm",
		Data:    peer,
	})
}

// POST /api/v1/tracker/leave
// Leave godoc
// @Summary Leave a swarm
// @Tags Tracker
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Acting user id"
// @Param body body leaveRequest true "Peer to remove"
// @Success 200 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Peer not found"
// @Router /api/v1/tracker/leave [post]
func (h *Tracker) Leave(w http.ResponseWriter, r *http.Request) {
	var req leaveRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid input")
		return
	}
	peerID, err := parseOptionalID(req.PeerID)
	if err != nil {
		badRequest(w, "Invalid peerId")
		return
	}

	if err := h.svc.Leave(r.Context(), peerID, middleware.UserIDFrom(r.Context())); err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Left swarm",
	})
}

// GET /api/v1/tracker/peers/{fileId}
// ListPeers godoc
// @Summary List a file's swarm
// @Tags Tracker
// @Produce json
// @Param fileId path string true "File id"
// @Success 200 {object} utils.Payload{data=[]models.Peer}
// @Failure 400 {object} utils.Payload
// @Router /api/v1/tracker/peers/{fileId} [get]
func (h *Tracker) ListPeers(w http.ResponseWriter, r *http.Request) {
	fileID, ok := pathID(w, r, "fileId")
	if !ok {
		return
	}
	peers, err := h.svc.ListPeers(r.Context(), fileID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if peers == nil {
		peers = []models.Peer{}
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Peers retrieved successfully",
		Data:    peers,
	})
}

// POST /api/v1/tracker/tick
// Tick godoc
// @Summary Advance the simulation
// @Description Moves every leecher of every swarm forward by one step.
// @Tags Tracker
// @Produce json
// @Success 200 {object} utils.Payload{data=swarm.TickResult}
// @Failure 429 {object} utils.Payload
// @Failure 500 {object} utils.Payload
// @Router /api/v1/tracker/tick [post]
func (h *Tracker) Tick(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Tick(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Simulation tick complete",
		Data:    res,
	})
}
