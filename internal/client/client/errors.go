package client

import (
	"errors"

	"github.com/acadium/dashboard/internal/common"
)

var (
	ErrUnavailable  = errors.New("remote service unavailable")
	ErrUnauthorized = common.ErrorUnauthorized
)
