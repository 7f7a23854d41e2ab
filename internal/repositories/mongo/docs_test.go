package mongo

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rohits-web03/minitracker/internal/models"
)

func TestPeerDocRoundtrip(t *testing.T) {
	now := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	user := uuid.New()
	p := models.Peer{
		ID:            uuid.New(),
		FileID:        uuid.New(),
		UserID:        &user,
		ClientName:    "qbit",
		Status:        models.StatusLeecher,
		Progress:      42.5,
		DownloadSpeed: 7.25,
		Version:       3,
		CreatedAt:     now,
		UpdatedAt:     now.Add(time.Minute),
	}

	got := fromPeerDoc(toPeerDoc(p))
	if got.ID != p.ID || got.FileID != p.FileID || got.ClientName != p.ClientName || got.Status != p.Status {
		t.Errorf("identity: got %+v, want %+v", got, p)
	}
	if got.Progress != p.Progress || got.DownloadSpeed != p.DownloadSpeed || got.Version != p.Version {
		t.Errorf("progress: got %+v, want %+v", got, p)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) || !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Errorf("timestamps: got %v/%v, want %v/%v", got.CreatedAt, got.UpdatedAt, p.CreatedAt, p.UpdatedAt)
	}
	if got.UserID == nil || *got.UserID != user {
		t.Fatalf("UserID: got %v, want %v", got.UserID, user)
	}
}

func TestOptionalIDs(t *testing.T) {
	f := models.File{ID: uuid.New(), Name: "anon"}
	doc := toFileDoc(f)
	if doc.CreatedBy != "" {
		t.Fatalf("expected empty createdBy, got %q", doc.CreatedBy)
	}
	if got := fromFileDoc(doc); got.CreatedBy != nil {
		t.Fatalf("expected nil CreatedBy, got %v", got.CreatedBy)
	}
	if parseID("not-a-uuid") != nil {
		t.Fatalf("invalid ids should parse to nil")
	}
	if !timeFromMilli(0).IsZero() {
		t.Fatalf("zero millis should map to the zero time")
	}
}

func TestActivityDocRoundtrip(t *testing.T) {
	fileID := uuid.New()
	a := models.Activity{
		ID:        17,
		FileID:    &fileID,
		Message:   "qbit left the swarm",
		CreatedAt: time.UnixMilli(1700000000123).UTC(),
	}
	got := fromActivityDoc(toActivityDoc(a))
	if got.ID != a.ID || got.Message != a.Message || !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if got.FileID == nil || *got.FileID != fileID || got.UserID != nil {
		t.Fatalf("ids mismatch: %+v", got)
	}
}
