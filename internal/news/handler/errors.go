package handler

import "github.com/VictorSaf/ainvestfeed/internal/platform/apperr"

func badQuery() error {
	return apperr.Validation("invalid query parameters", nil)
}
