package ticket

import "errors"

var ErrTicketNotFound = errors.New("ticket not found")
