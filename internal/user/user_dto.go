package user

type CreateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Password   string `json:"password" binding:"required,min=6"`
	Department string `json:"department" binding:"required"`
	IsAdmin    bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Department string `json:"department" binding:"required"`
	IsAdmin    bool   `json:"is_admin"`
}

type UserResponse struct {
	ID              uint   `json:"id"`
	Username        string `json:"username"`
	Department      string `json:"department"`
	IsAdmin         bool   `json:"is_admin"`
	RemainingLeaves int    `json:"remaining_leaves"`
}
