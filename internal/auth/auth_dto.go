package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Department      string `json:"department"`
	IsAdmin         bool   `json:"is_admin"`
	RemainingLeaves int    `json:"remaining_leaves"`
}
