package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rohits-web03/minitracker/internal/api/middleware"
	"github.com/rohits-web03/minitracker/internal/swarm"
	"github.com/rohits-web03/minitracker/internal/utils"
)

// Tracker serves the file, swarm and activity endpoints.
type Tracker struct {
	svc     *swarm.Service
	archive Archiver
	log     zerolog.Logger
}

// NewTracker wires the tracker handlers. archive may be nil, in which case
// archiving answers 503.
func NewTracker(svc *swarm.Service, archive Archiver, log zerolog.Logger) *Tracker {
	return &Tracker{svc: svc, archive: archive, log: log}
}

type registerFileRequest struct {
	Name   string  `json:"name"`
	SizeMB float64 `json:"sizeMB"`
}

// GET /api/v1/tracker/files
// ListFiles godoc
// @Summary List registered files
// @Description Returns every file with its current seeder and leecher counts.
// @Tags Tracker
// @Produce json
// @Success 200 {object} utils.Payload{data=[]swarm.FileSummary}
// @Failure 500 {object} utils.Payload
// @Router /api/v1/tracker/files [get]
func (h *Tracker) ListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.ListFilesWithStats(r.Context())
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Files retrieved successfully",
		Data:    files,
	})
}

// POST /api/v1/tracker/files
// RegisterFile godoc
// @Summary Register a file
// @Description Creates a simulated torrent and plans its pieces.
// @Tags Tracker
// @Accept json
// @Produce json
// @Param X-User-ID header string false "Acting user id"
// @Param body body registerFileRequest true "File to register"
// @Success 201 {object} utils.Payload{data=models.File}
// @Failure 400 {object} utils.Payload
// @Router /api/v1/tracker/files [post]
func (h *Tracker) RegisterFile(w http.ResponseWriter, r *http.Request) {
	var req registerFileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		badRequest(w, "Invalid input")
		return
	}

	file, err := h.svc.RegisterFile(r.Context(), swarm.RegisterFileInput{
		Name:      req.Name,
		SizeMB:    req.SizeMB,
		CreatedBy: middleware.UserIDFrom(r.Context()),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "File registered successfully",
		Data:    file,
	})
}
