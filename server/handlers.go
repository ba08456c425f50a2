package server

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gogpu/studio/generate"
)

type generateRequest struct {
	Prompt              string   `json:"prompt"`
	Mode                string   `json:"mode"`
	Context             string   `json:"context"`
	SelectedSuggestions []string `json:"selectedSuggestions"`
	AspectRatio         string   `json:"aspectRatio"`
	Quality             int      `json:"quality"`
	NumImages           int      `json:"numImages"`
}

type refineRequest struct {
	OriginalPrompt   string `json:"originalPrompt"`
	RefinementPrompt string `json:"refinementPrompt"`
	Mode             string `json:"mode"`
	Context          string `json:"context"`
	OriginalSeed     *int   `json:"originalSeed"`
	AspectRatio      string `json:"aspectRatio"`
	Quality          int    `json:"quality"`
}

type dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type resultMetadata struct {
	Prompt        string     `json:"prompt"`
	Model         string     `json:"model"`
	Dimensions    dimensions `json:"dimensions"`
	Seed          int        `json:"seed"`
	InferenceTime float64    `json:"inference_time"`
	HasNSFW       bool       `json:"has_nsfw"`
	Refinement    string     `json:"refinement,omitempty"`
}

type generateResponse struct {
	Success  bool             `json:"success"`
	Images   []generate.Image `json:"images"`
	Metadata resultMetadata   `json:"metadata"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Prompt == "" {
		s.writeError(w, http.StatusBadRequest, "Prompt is required", "")
		return
	}
	if req.Quality == 0 {
		req.Quality = 85
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "square"
	}
	if req.NumImages < 1 {
		req.NumImages = 1
	}

	if s.client == nil {
		s.writeJSON(w, http.StatusOK, mockGeneration(req))
		return
	}

	cfg, ok := generate.ModeConfigs[req.Mode]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid creative mode", "")
		return
	}
	width, height := generate.AdjustDimensions(req.AspectRatio, cfg.Width, cfg.Height)
	steps := int(math.Round(float64(cfg.NumInferenceSteps) * float64(req.Quality) / 100))

	genReq := &generate.Request{
		Prompt:            generate.BuildEnhancedPrompt(req.Prompt, req.Context, req.SelectedSuggestions),
		Model:             cfg.Model,
		Width:             width,
		Height:            height,
		NumImages:         req.NumImages,
		GuidanceScale:     cfg.GuidanceScale,
		NumInferenceSteps: steps,
		NegativePrompt:    generate.NegativePrompt(req.Mode),
	}
	res, err := s.client.Generate(r.Context(), genReq)
	if err != nil {
		s.genError(w, err, "Failed to generate image")
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{
		Success: true,
		Images:  res.Images,
		Metadata: resultMetadata{
			Prompt:        genReq.Prompt,
			Model:         cfg.Model,
			Dimensions:    dimensions{Width: width, Height: height},
			Seed:          res.Seed,
			InferenceTime: res.Timings.Inference,
			HasNSFW:       firstNSFW(res),
		},
	})
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.OriginalPrompt == "" || req.RefinementPrompt == "" || req.Mode == "" {
		s.writeError(w, http.StatusBadRequest, "Missing required fields", "")
		return
	}
	cfg, ok := generate.ModeConfigs[req.Mode]
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid creative mode", "")
		return
	}
	if req.Quality == 0 {
		req.Quality = 85
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "square"
	}

	refinedPrompt := fmt.Sprintf("%s, %s, refined, improved, enhanced",
		req.OriginalPrompt, req.RefinementPrompt)
	width, height := generate.AdjustDimensions(req.AspectRatio, cfg.Width, cfg.Height)

	if s.client == nil {
		resp := mockGeneration(generateRequest{
			Prompt: refinedPrompt, Mode: req.Mode, NumImages: 1,
		})
		resp.Metadata.Dimensions = dimensions{Width: width, Height: height}
		resp.Metadata.Refinement = req.RefinementPrompt
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	res, err := s.client.Refine(r.Context(), &generate.RefineRequest{
		OriginalPrompt:   req.OriginalPrompt,
		RefinementPrompt: req.RefinementPrompt,
		Mode:             req.Mode,
		AspectRatio:      req.AspectRatio,
		Quality:          req.Quality,
		OriginalSeed:     req.OriginalSeed,
	})
	if err != nil {
		s.genError(w, err, "Failed to refine image")
		return
	}

	s.writeJSON(w, http.StatusOK, generateResponse{
		Success: true,
		Images:  res.Images,
		Metadata: resultMetadata{
			Prompt:        refinedPrompt,
			Model:         cfg.Model,
			Dimensions:    dimensions{Width: width, Height: height},
			Seed:          res.Seed,
			InferenceTime: res.Timings.Inference,
			HasNSFW:       firstNSFW(res),
			Refinement:    req.RefinementPrompt,
		},
	})
}

// genError maps client failures to responses: a busy pipeline is 429,
// anything else is the original {error, details} 500 shape.
func (s *Server) genError(w http.ResponseWriter, err error, msg string) {
	s.logger.Error("generation request failed", "error", err)
	if errors.Is(err, generate.ErrGenerationInFlight) {
		s.writeError(w, http.StatusTooManyRequests, "Generation already in progress", "")
		return
	}
	s.writeError(w, http.StatusInternalServerError, msg, err.Error())
}

// mockGeneration fabricates a plausible result for development without a
// configured generation service.
func mockGeneration(req generateRequest) generateResponse {
	images := make([]generate.Image, req.NumImages)
	for i := range images {
		images[i] = generate.Image{
			URL:         fmt.Sprintf("https://picsum.photos/1024/1024?random=%d", time.Now().UnixMilli()+int64(i)),
			Width:       1024,
			Height:      1024,
			ContentType: "image/jpeg",
		}
	}
	prompt := req.Prompt
	if req.Mode != "" {
		prompt = fmt.Sprintf("%s (%s style, %s context)", req.Prompt, req.Mode, req.Context)
	}
	return generateResponse{
		Success: true,
		Images:  images,
		Metadata: resultMetadata{
			Prompt:        prompt,
			Model:         "mode-" + req.Mode,
			Dimensions:    dimensions{Width: 1024, Height: 1024},
			Seed:          rand.IntN(1000000),
			InferenceTime: 2.5,
			HasNSFW:       false,
		},
	}
}

func firstNSFW(res *generate.Result) bool {
	return len(res.HasNSFWConcepts) > 0 && res.HasNSFWConcepts[0]
}
