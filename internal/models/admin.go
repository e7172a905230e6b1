package models

// Admin is the authenticated operator identity. It is never persisted by this
// client; it lives only in the session store and is rebuilt from the initial
// query parameters on each start.
type Admin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
