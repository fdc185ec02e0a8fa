package service

import (
	"fashionhub/common"

	"github.com/gin-gonic/gin"
)

type response struct {
	Data any `json:"data"`
}

func composeResponse(data any) response {
	return response{Data: data}
}

func (s *Service) defaultAuthSkipper(ctx *gin.Context) bool {
	path := ctx.Request.URL.Path
	return common.HasPrefixes(path, "/api/auth")
}
