package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/TyCGroup/serviciosgenerales/live"
	"github.com/TyCGroup/serviciosgenerales/services"
	"github.com/TyCGroup/serviciosgenerales/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	DB       *gorm.DB
	accounts *services.AccountService
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:       db,
		accounts: services.NewAccountService(db),
	}
}

// Register handles public self-registration. The role is assigned by
// the naming rule, never taken from the request.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.accounts.Register(req.Email, req.Password, req.Name)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "Usuario registrado", gin.H{
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// Login authenticates and returns a JWT plus the role the client
// routes on.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.accounts.Authenticate(input.Email, input.Password)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for user: %s, role: %s", user.Email, user.Role)

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Sesión iniciada",
		"data": gin.H{
			"token":     token,
			"user_role": strings.ToLower(user.Role),
			"user_name": user.DisplayName(),
		},
	})
}

// Logout blacklists the presented token.
func (uc *UserController) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token no encontrado"))
		return
	}

	utils.BlacklistToken(tokenString)
	utils.RespondJSON(c, http.StatusOK, "Sesión cerrada", nil)
}

// GetProfile returns the authenticated account.
func (uc *UserController) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	user, err := uc.accounts.GetByID(userID)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Perfil", gin.H{
		"id":             user.ID,
		"name":           user.DisplayName(),
		"email":          user.Email,
		"role":           user.Role,
		"active":         user.Active,
		"created_at":     user.CreatedAt,
		"last_access_at": user.LastAccessAt,
	})
}

// GetAllUsers lists every account for the admin user screen.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.accounts.ListUsers()
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Todos los usuarios", users)
}

// CreateUser provisions an account server-side with an explicit role
// and activation state.
func (uc *UserController) CreateUser(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role" binding:"required"`
		Active   *bool  `json:"active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := uc.accounts.CreateUser(req.Email, req.Password, req.Name, req.Role, active)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("User provisioned by admin: %s (role=%s, active=%t)", user.Email, user.Role, user.Active)
	live.BroadcastUserUpdated(*user)

	utils.RespondJSON(c, http.StatusCreated, "Usuario creado", user)
}

// UpdateUser edits name, role and activation. Email stays locked.
func (uc *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id inválido"))
		return
	}

	type request struct {
		Name   *string `json:"name"`
		Role   *string `json:"role"`
		Active *bool   `json:"active"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.accounts.UpdateProfile(uint(id), req.Name, req.Role, req.Active)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	live.BroadcastUserUpdated(*user)
	utils.RespondJSON(c, http.StatusOK, "Usuario actualizado", user)
}

// SetUserActive toggles the activation switch on its own endpoint,
// matching the one-tap action on the user cards.
func (uc *UserController) SetUserActive(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("id inválido"))
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	user, err := uc.accounts.SetActive(uint(id), *req.Active)
	if err != nil {
		utils.RespondAppError(c, err)
		return
	}

	live.BroadcastUserUpdated(*user)
	utils.RespondJSON(c, http.StatusOK, "Usuario actualizado", user)
}

// currentUserID reads the id the auth middleware stored.
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
