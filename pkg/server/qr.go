package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"

	"github.com/matzehuels/signupboard/pkg/errors"
)

const (
	defaultQRSize = 320
	minQRSize     = 64
	maxQRSize     = 1024
)

// qr serves a PNG QR code linking to the event's SVG board.
func (s *Server) qr(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := s.runner.Load(r.Context(), eventID); err != nil {
		s.writeError(w, r, err)
		return
	}

	size := defaultQRSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < minQRSize || n > maxQRSize {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput,
				"size must be between %d and %d pixels", minQRSize, maxQRSize))
			return
		}
		size = n
	}

	png, err := qrcode.Encode(boardURL(r, eventID), qrcode.Medium, size)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "qr generation failed"))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// boardURL is the absolute URL of the event's SVG board as seen by the
// client, respecting TLS and X-Forwarded-Proto.
func boardURL(r *http.Request, eventID string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		scheme = proto
	}
	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     "/v1/events/" + eventID + "/board",
		RawQuery: "format=svg",
	}
	return u.String()
}
