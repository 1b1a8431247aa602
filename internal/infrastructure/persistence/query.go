package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/storekit/backend/internal/domain/shared"
)

var safeColumnPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// orderClause builds a safe ORDER BY clause from the filter, falling back
// to the given default. Column names are whitelisted by shape so request
// input can never inject SQL.
func orderClause(filter shared.Filter, fallback string) string {
	if filter.OrderBy == "" || !safeColumnPattern.MatchString(filter.OrderBy) {
		return fallback
	}
	dir := "ASC"
	if strings.EqualFold(filter.OrderDir, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("%s %s", filter.OrderBy, dir)
}
