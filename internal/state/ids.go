package state

import (
	"strconv"

	"go.trai.ch/jobsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func checkID(id int) error {
	if !domain.ValidJobID(id) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidJobID, "cannot bookmark "+strconv.Itoa(id)), "id", id)
	}
	return nil
}
