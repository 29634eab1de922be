package domain

// Credential is the claims payload derived from a User at login time.
// It is never persisted; it exists only inside issued tokens and as the
// decoded result of verification.
type Credential struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Active bool   `json:"isActive"`
	Role   Role   `json:"role"`
}

// CredentialFromUser builds the claims payload for a user.
func CredentialFromUser(u *User) Credential {
	return Credential{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.FirstName,
		Active: u.Active,
		Role:   u.Role,
	}
}
