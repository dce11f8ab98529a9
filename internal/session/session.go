package session

import "encoding/json"

// Storage keys. The canonical scheme is token + user (+ username copy);
// the rest are read for clients written by older front-end builds.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyUsername = "username"
	KeyLoggedIn = "isLoggedIn"

	legacyKeyAuthToken = "authToken"
	legacyKeyUserToken = "userToken"
	legacyKeyUserEmail = "userEmail"
)

// tokenKeys are consulted in order; the first non-empty value wins.
var tokenKeys = []string{KeyToken, legacyKeyAuthToken, legacyKeyUserToken}

// allKeys is everything ClearSession removes.
var allKeys = []string{
	KeyToken,
	KeyUser,
	KeyUsername,
	KeyLoggedIn,
	legacyKeyAuthToken,
	legacyKeyUserToken,
	legacyKeyUserEmail,
}

// Session is the derived authentication state of one client.
// The zero value is the anonymous session.
type Session struct {
	Token      string
	Username   string
	UserID     string
	IsLoggedIn bool

	// Legacy is set when the state came from the pre-migration key scheme.
	Legacy bool
}

// User is the record stored as JSON under the user key.
type User struct {
	ID       ID     `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Anonymous returns the logged-out session.
func Anonymous() Session {
	return Session{}
}

// ID is a user identifier. The backend emits numeric ids; older clients
// stored them as strings, so both decode.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}
