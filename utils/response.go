// utils/response.go
package utils

import (
	"fmt"
	"math"

	"github.com/gin-gonic/gin"
)

func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}

// FormatUSD renders a revenue figure in whole dollars. Rounding happens here
// at presentation time only, never during aggregation.
func FormatUSD(amount float64) string {
	return fmt.Sprintf("$%d", int64(math.Round(amount)))
}
