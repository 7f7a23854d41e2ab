package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/repositories"
	"github.com/rohits-web03/minitracker/internal/utils"
)

const archiveLimit = 1000

// Archiver exports a file's activity log to object storage.
type Archiver interface {
	Archive(ctx context.Context, fileID uuid.UUID, acts []models.Activity) (repositories.ArchiveResult, error)
}

// GET /api/v1/tracker/activity/{fileId}
// ListActivity godoc
// @Summary Recent swarm activity
// @Description Most recent events of a file's swarm, newest first.
// @Tags Tracker
// @Produce json
// @Param fileId path string true "File id"
// @Param limit query int false "Maximum number of events (default 50)"
// @Success 200 {object} utils.Payload{data=[]models.Activity}
// @Failure 400 {object} utils.Payload
// @Router /api/v1/tracker/activity/{fileId} [get]
func (h *Tracker) ListActivity(w http.ResponseWriter, r *http.Request) {
	fileID, ok := pathID(w, r, "fileId")
	if !ok {
		return
	}
	// Unparseable limits fall back to the default.
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	acts, err := h.svc.ListActivity(r.Context(), fileID, limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if acts == nil {
		acts = []models.Activity{}
	}
	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Activity retrieved successfully",
		Data:    acts,
	})
}

// POST /api/v1/tracker/activity/{fileId}/archive
// ArchiveActivity godoc
// @Summary Archive swarm activity
// @Description Uploads the file's activity log to object storage and returns a presigned download URL.
// @Tags Tracker
// @Produce json
// @Param fileId path string true "File id"
// @Success 201 {object} utils.Payload{data=repositories.ArchiveResult}
// @Failure 404 {object} utils.Payload "File not found"
// @Failure 503 {object} utils.Payload "Archiving not configured"
// @Router /api/v1/tracker/activity/{fileId}/archive [post]
func (h *Tracker) ArchiveActivity(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		utils.JSONResponse(w, http.StatusServiceUnavailable, utils.Payload{
			Success: false,
			Message: "Activity archiving is not configured",
		})
		return
	}
	fileID, ok := pathID(w, r, "fileId")
	if !ok {
		return
	}
	if _, err := h.svc.GetFile(r.Context(), fileID); err != nil {
		writeError(w, h.log, err)
		return
	}

	acts, err := h.svc.ListActivity(r.Context(), fileID, archiveLimit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	res, err := h.archive.Archive(r.Context(), fileID, acts)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Activity archived",
		Data:    res,
	})
}
