package deal

import "errors"

var ErrDealNotFound = errors.New("deal not found")
