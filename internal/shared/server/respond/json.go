package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
