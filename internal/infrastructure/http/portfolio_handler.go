package http

import (
	"net/http"

	"github.com/rios0rios0/folio/internal/domain/commands"
	"github.com/rios0rios0/folio/internal/domain/entities"
)

type PortfolioHandler struct {
	render commands.Render
}

func NewPortfolioHandler(render commands.Render) *PortfolioHandler {
	return &PortfolioHandler{render: render}
}

type generateRequest struct {
	PortfolioData *entities.PortfolioData `json:"portfolioData"`
}

type generateResponse struct {
	envelope
	Files entities.FileSet `json:"files"`
}

// Generate renders portfolio data into the files of a static site.
func (h *PortfolioHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := missingFields("portfolioData", present(req.PortfolioData != nil)); err != nil {
		writeError(w, err)
		return
	}

	output, err := h.render.Execute(r.Context(), *req.PortfolioData, commands.RenderOptions{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, generateResponse{
		envelope: envelope{Success: true, Message: "Portfolio generated successfully"},
		Files:    output.Files,
	})
}
