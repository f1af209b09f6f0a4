package handler

import (
	"github.com/deppfellow/pizza-restaurants/internal/server"
	"github.com/labstack/echo/v4"
)

// IndexPage is the body served at the root path.
const IndexPage = "<h1>Code challenge</h1>"

type IndexRequest struct{}

func (r *IndexRequest) Validate() error {
	return nil
}

type IndexHandler struct {
	Handler
}

func NewIndexHandler(s *server.Server) *IndexHandler {
	return &IndexHandler{Handler: NewHandler(s)}
}

func (h *IndexHandler) Index(c echo.Context, _ *IndexRequest) (string, error) {
	return IndexPage, nil
}
