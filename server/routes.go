package server

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chundurirohan/Courtly-server/errors"
	"github.com/Chundurirohan/Courtly-server/service"
	"github.com/Chundurirohan/Courtly-server/transcription"
	"github.com/Chundurirohan/Courtly-server/util"
	"github.com/Chundurirohan/Courtly-server/validation"
	"github.com/Chundurirohan/Courtly-server/version"
)

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.handleHealth)
	api.POST("/transcribe", s.handleTranscribe)
	api.POST("/export", s.handleExport)

	s.engine.Static("/exports", s.cfg.Dirs.Export)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"service": s.cfg.Name,
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": version.GetShortVersion(),
	})
}

// transcribeForm carries the non-file fields of a transcription request.
type transcribeForm struct {
	Speakers     int    `form:"speakers"`
	Timestamps   bool   `form:"timestamps"`
	Confidence   bool   `form:"confidence"`
	EnhanceAudio bool   `form:"enhanceAudio"`
	Notes        string `form:"notes"`
}

func (s *Server) handleTranscribe(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		s.writeError(c, errors.InvalidInput("", "expected multipart form data").WithCause(err))
		return
	}
	uploads := form.File["files"]
	if len(uploads) == 0 {
		s.writeError(c, errors.MissingField("files"))
		return
	}

	var opts transcribeForm
	if err := c.ShouldBind(&opts); err != nil {
		s.writeError(c, errors.InvalidInput("", "malformed form fields").WithCause(err))
		return
	}
	if opts.Speakers != 0 {
		if err := validation.New().Min("speakers", opts.Speakers, 1).Err(); err != nil {
			s.writeError(c, err)
			return
		}
	}

	files, err := s.saveUploads(c, uploads)
	if err != nil {
		s.writeError(c, err)
		return
	}

	results, err := s.svc.TranscribeBatch(c.Request.Context(), files, transcription.Options{
		Speakers:     opts.Speakers,
		Timestamps:   opts.Timestamps,
		Confidence:   opts.Confidence,
		EnhanceAudio: opts.EnhanceAudio,
		Notes:        opts.Notes,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "results": results})
}

// saveUploads writes each received file under the data dir with a
// timestamp prefix and a sanitized name.
func (s *Server) saveUploads(c *gin.Context, uploads []*multipart.FileHeader) ([]service.UploadedFile, error) {
	files := make([]service.UploadedFile, 0, len(uploads))
	for _, u := range uploads {
		name := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), util.SanitizeFilename(filepath.Base(u.Filename)))
		path := filepath.Join(s.cfg.Dirs.Data, name)
		if err := c.SaveUploadedFile(u, path); err != nil {
			return nil, errors.Persistence("uploaded file", err)
		}
		files = append(files, service.UploadedFile{Path: path, Name: u.Filename})
	}
	return files, nil
}

// exportRequest is the JSON body of an export request.
type exportRequest struct {
	Format         string `json:"format" validate:"required"`
	TranscriptText string `json:"transcriptText"`
	Title          string `json:"title" validate:"max=128"`
}

func (s *Server) handleExport(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, errors.InvalidInput("", "malformed export request").WithCause(err))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		if req.Format == "" {
			s.writeError(c, errors.MissingField("format"))
			return
		}
		s.writeError(c, err)
		return
	}

	path, err := s.svc.Export(c.Request.Context(), req.Format, req.TranscriptText, req.Title)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "path": path})
}
