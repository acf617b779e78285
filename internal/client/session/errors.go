package session

import (
	"errors"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
)

var (
	ErrAlreadyInitialized = errors.New("session already initialized")
	ErrUnknownMode        = errors.New("unknown authentication mode")
	ErrNoRefreshToken     = api.ErrNoRefreshToken
)

// authFailedMessage is shown when the server gives no reason.
const authFailedMessage = "Authentication failed"
