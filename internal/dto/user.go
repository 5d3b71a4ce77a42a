package dto

// UserRegisterRequest 用户注册请求
type UserRegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=64"`
	Nickname string `json:"nickname" binding:"omitempty,max=50"`
}

// UserLoginRequest 用户登录请求
type UserLoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar"`
	Nickname  string `json:"nickname"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// UserLoginResponse 登录响应
type UserLoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
}

// UserDetailResponse 用户详情响应，带作者综合评分
type UserDetailResponse struct {
	UserResponse
	AuthorRating float64 `json:"author_rating"`
}
