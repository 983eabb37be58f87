package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/linuxmatters/lyricloud/internal/cache"
	"github.com/linuxmatters/lyricloud/internal/config"
	"github.com/linuxmatters/lyricloud/internal/store"
	"github.com/linuxmatters/lyricloud/internal/wordcloud"
)

// WordcloudRequest is the POST /api/wordcloud body. Missing sizes take the
// CLI defaults.
type WordcloudRequest struct {
	Lyrics   string   `json:"lyrics"`
	Colors   []string `json:"colors"`
	Width    *int     `json:"width,omitempty"`
	Height   *int     `json:"height,omitempty"`
	MaxWords *int     `json:"max_words,omitempty"`
}

type WordcloudResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	ID      string `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version,omitempty"`
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: s.cfg.App.Version,
	})
}

func (s *Server) handleWordcloud(c *gin.Context) {
	req, ok := s.decodeRequest(c)
	if !ok {
		return
	}

	if strings.TrimSpace(req.Lyrics) == "" {
		errorJSON(c, http.StatusBadRequest, "Lyrics text is required")
		return
	}
	if len(req.Colors) == 0 {
		errorJSON(c, http.StatusBadRequest, "Colors array is required")
		return
	}

	width := intOr(req.Width, config.DefaultWidth)
	height := intOr(req.Height, config.DefaultHeight)
	maxWords := intOr(req.MaxWords, config.DefaultMaxWords)
	if msg := s.checkLimits(width, height, maxWords); msg != "" {
		errorJSON(c, http.StatusBadRequest, msg)
		return
	}

	ctx := c.Request.Context()
	key := cache.Key(req.Lyrics, strings.Join(req.Colors, ","),
		strconv.Itoa(width), strconv.Itoa(height), strconv.Itoa(maxWords))
	if s.cache != nil {
		body, hit, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[cache] %v", err)
		} else if hit {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", body)
			return
		}
	}

	opts := wordcloud.DefaultOptions()
	opts.Lyrics = req.Lyrics
	opts.Colors = req.Colors
	opts.Width = width
	opts.Height = height
	opts.MaxWords = maxWords
	opts.ReturnBase64 = true
	opts.Fonts = s.fonts

	res, err := s.generate(ctx, opts)
	if err != nil {
		if errors.Is(err, wordcloud.ErrInvalidColor) || errors.Is(err, wordcloud.ErrInvalidOption) || errors.Is(err, wordcloud.ErrMissingInput) {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[wordcloud] generation failed: %v", err)
		errorJSON(c, http.StatusInternalServerError, err.Error())
		return
	}
	if res == nil || res.Base64 == "" {
		errorJSON(c, http.StatusInternalServerError, "Failed to generate word cloud")
		return
	}

	resp := WordcloudResponse{Success: true, Image: wordcloud.DataURI(res.Base64)}
	if s.store != nil {
		id, url, err := s.store.Put(ctx, res.PNG)
		if err != nil {
			log.Printf("[store] %v", err)
		} else {
			resp.ID, resp.URL = id, url
		}
	}

	body, err := json.Marshal(resp)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "Failed to generate word cloud")
		return
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, body); err != nil {
			log.Printf("[cache] %v", err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// decodeRequest writes the error response itself when it returns false
func (s *Server) decodeRequest(c *gin.Context) (WordcloudRequest, bool) {
	var req WordcloudRequest

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			errorJSON(c, http.StatusRequestEntityTooLarge, "Request body too large")
			return req, false
		}
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return req, false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return req, false
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		errorJSON(c, http.StatusBadRequest, "No data provided")
		return req, false
	}
	return req, true
}

func (s *Server) checkLimits(width, height, maxWords int) string {
	maxDim := s.cfg.Limits.MaxDimension
	if maxDim <= 0 {
		if width <= 0 || height <= 0 {
			return "Width and height must be positive"
		}
	} else if width <= 0 || height <= 0 || width > maxDim || height > maxDim {
		return fmt.Sprintf("Width and height must be between 1 and %d", maxDim)
	}
	if maxWords <= 0 {
		return "max_words must be positive"
	}
	return ""
}

func (s *Server) handleImage(c *gin.Context) {
	if s.store == nil {
		errorJSON(c, http.StatusNotFound, "Image storage is not configured")
		return
	}

	data, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, "Image not found")
		return
	}
	if err != nil {
		log.Printf("[store] %v", err)
		errorJSON(c, http.StatusInternalServerError, "Failed to load image")
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
