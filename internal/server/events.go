package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"uprala/internal/storage"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

const imageFormField = "image"

func (s *Service) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var filter = new(types.EventFilter)
	if err := decodeQuery(r, filter); err != nil {
		s.writeError(w, r, err)
		return
	}

	events, err := s.events.Events(r.Context(), filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.events.Event(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, event)
}

func (s *Service) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var input = new(types.CreateEventInput)
	if err := decodeJSON(w, r, input); err != nil {
		s.writeError(w, r, err)
		return
	}

	event, err := s.events.CreateEvent(r.Context(), input)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.requestLogger(r).WithFields(logrus.Fields{
		"event_id": event.ID,
		"images":   len(event.Images),
	}).Info("event created")

	s.writeJSON(w, http.StatusCreated, event)
}

func (s *Service) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch = new(types.EventPatch)
	if err := decodeJSON(w, r, patch); err != nil {
		s.writeError(w, r, err)
		return
	}

	event, dropped, err := s.events.UpdateEvent(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.removeImages(r, dropped)

	s.writeJSON(w, http.StatusOK, event)
}

func (s *Service) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")

	removed, err := s.events.DeleteEvent(r.Context(), eventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.removeImages(r, removed)

	s.requestLogger(r).WithField("event_id", eventID).Info("event deleted")

	w.WriteHeader(http.StatusNoContent)
}

// removeImages deletes stored files for images no longer referenced by an
// event. The rows are already gone, so failures are only logged.
func (s *Service) removeImages(r *http.Request, images []*types.EventImage) {
	if s.images == nil || len(images) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 10*time.Second)
	defer cancel()

	for _, image := range images {
		if err := s.images.Delete(ctx, image.Src); err != nil {
			s.requestLogger(r).WithError(err).WithField("src", image.Src).Warn("failed to remove event image")
		}
	}
}

func (s *Service) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		s.writeError(w, r, errors.New("image storage is not configured"))
		return
	}

	maxBytes := s.config.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+(1<<20))

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.imageUploadFailed(w, r, tooLarge(s.config.MaxUploadMB))
			return
		}
		s.imageUploadFailed(w, r, types.NewValidationError("expected a multipart form", nil))
		return
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		s.imageUploadFailed(w, r, types.NewValidationError("no image uploaded", map[string]string{
			imageFormField: "is required",
		}))
		return
	}
	defer file.Close()

	if header.Size > maxBytes {
		s.imageUploadFailed(w, r, tooLarge(s.config.MaxUploadMB))
		return
	}

	body := bufio.NewReaderSize(file, 512)
	head, _ := body.Peek(512)

	contentType, ext, ok := storage.SniffImage(head)
	if !ok {
		s.imageUploadFailed(w, r, types.NewValidationError("file is not an image", map[string]string{
			imageFormField: "must be a jpeg, png, gif, webp or bmp image",
		}))
		return
	}

	name := storage.ObjectName(ext, time.Now())
	src, err := s.images.Save(r.Context(), name, contentType, body)
	if err != nil {
		s.imageUploadFailed(w, r, err)
		return
	}

	s.metrics.imageUploads.WithLabelValues("stored").Inc()

	s.requestLogger(r).WithFields(logrus.Fields{
		"src":          src,
		"content_type": contentType,
	}).Info("event image uploaded")

	s.writeJSON(w, http.StatusCreated, types.UploadedImage{Src: src, Thumb: src})
}

func (s *Service) imageUploadFailed(w http.ResponseWriter, r *http.Request, err error) {
	s.metrics.imageUploads.WithLabelValues("rejected").Inc()
	s.writeError(w, r, err)
}

func tooLarge(maxMB int64) error {
	return types.NewValidationError("image too large", map[string]string{
		imageFormField: fmt.Sprintf("must be at most %d MB", maxMB),
	})
}
