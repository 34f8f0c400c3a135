package auth

// Identity is the authenticated caller of a request. It is resolved once by
// the session middleware and handed to services explicitly.
type Identity struct {
	UserID      uint
	Username    string
	IsSuperuser bool
}

func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
