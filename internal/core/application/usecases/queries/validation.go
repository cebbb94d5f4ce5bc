package queries

import (
	"fmt"

	"storefront/internal/pkg/errs"
)

func positiveID(param string, id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}
