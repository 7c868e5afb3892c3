package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/lingo-backend/internal/platform/apierr"
)

// uuidParam parses the named path parameter; an invalid id is a 400.
func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apierr.BadRequest(errors.New("invalid " + name))
	}
	return id, nil
}
