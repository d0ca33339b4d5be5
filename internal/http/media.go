package httpapi

import (
	"errors"
	"mime"
	"net/http"
	"os"

	"alphinex-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UploadResponse struct {
	URL     string `json:"url"`
	AssetID string `json:"assetId"`
}

// Upload stores the multipart "file" field. Public, since the careers form
// uploads CVs before the application is submitted.
func (s *Server) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.UploadMaxBytes)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteError(w, http.StatusRequestEntityTooLarge, services.KindValidation, "File is too large")
			return
		}
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Kind: services.KindValidation, Message: "No file uploaded", Field: "file"})
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()
	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{Kind: services.KindValidation, Message: "No file uploaded", Field: "file"})
		return
	}
	defer file.Close()

	asset, err := services.SaveMediaAsset(r.Context(), s.DB, s.Config.MediaStoragePath, services.BucketUploads, header.Filename, file)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.Logger.Info("file uploaded",
		zap.String("assetId", asset.ID),
		zap.String("contentType", asset.ContentType),
		zap.Int64("sizeBytes", asset.SizeBytes))
	WriteJSON(w, http.StatusOK, UploadResponse{URL: services.BuildAssetURL(asset.ID), AssetID: asset.ID})
}

func (s *Server) MediaContent(w http.ResponseWriter, r *http.Request) {
	asset, err := services.GetMediaAsset(r.Context(), s.DB, chi.URLParam(r, "assetId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	path := services.AssetPath(s.Config.MediaStoragePath, asset)
	if _, err := os.Stat(path); err != nil {
		WriteError(w, http.StatusNotFound, services.KindNotFound, "File not found")
		return
	}
	// Anything that is not an image or PDF is forced to download as opaque bytes.
	disposition, contentType := "attachment", "application/octet-stream"
	if services.InlineContentType(asset.ContentType) {
		disposition, contentType = "inline", asset.ContentType
	}
	params := map[string]string{}
	if asset.Filename != nil {
		params["filename"] = *asset.Filename
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, params))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeFile(w, r, path)
}

func (s *Server) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	s.deleted(w, r, services.DeleteMediaAsset(r.Context(), s.DB, s.Config.MediaStoragePath, chi.URLParam(r, "assetId")))
}
