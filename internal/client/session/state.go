package session

import "github.com/dmitrijs2005/genzclient/internal/client/api"

type State int

const (
	Uninitialized State = iota
	Initializing
	Authenticated
	Anonymous
	Error
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	case Error:
		return "error"
	}
	return "unknown"
}

// Snapshot is a point-in-time copy of the session. Profile is set only when
// State is Authenticated. Err holds the last user-facing failure message.
type Snapshot struct {
	State   State
	Profile *api.Profile
	Err     string
}

// Mode selects how Authenticate talks to the auth service.
type Mode int

const (
	ModeLogin Mode = iota + 1
	ModeRegister
)

func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeRegister:
		return "register"
	}
	return "unknown"
}

// Credentials are the Authenticate input. Handle is used by ModeRegister only.
type Credentials struct {
	Email    string
	Password string
	Handle   string
	Mode     Mode
}
