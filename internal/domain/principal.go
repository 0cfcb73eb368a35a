package domain

// Principal is the authenticated identity attached to every request.
// It is resolved once by the JWT middleware and passed into services,
// which check it instead of reaching for any ambient session state.
type Principal struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

func (p Principal) IsStaff() bool {
	return p.Role == RoleStaff
}

func (p Principal) IsBoy() bool {
	return p.Role == RoleBoy
}
