package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ledgerkeep/inventory/internal/user/usecase/command"
	"github.com/ledgerkeep/inventory/internal/user/usecase/query"
	"github.com/ledgerkeep/inventory/pkg/logger"
)

// UserHandler handles HTTP requests for accounts and authentication
type UserHandler struct {
	registerHandler   *command.RegisterUserHandler
	loginHandler      *command.LoginUserHandler
	changeRoleHandler *command.ChangeRoleHandler

	getHandler  *query.GetUserHandler
	listHandler *query.ListUsersHandler

	loginCounter *prometheus.CounterVec
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerHandler *command.RegisterUserHandler,
	loginHandler *command.LoginUserHandler,
	changeRoleHandler *command.ChangeRoleHandler,
	getHandler *query.GetUserHandler,
	listHandler *query.ListUsersHandler,
) *UserHandler {
	loginCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "user_service_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	prometheus.MustRegister(loginCounter)

	return &UserHandler{
		registerHandler:   registerHandler,
		loginHandler:      loginHandler,
		changeRoleHandler: changeRoleHandler,
		getHandler:        getHandler,
		listHandler:       listHandler,
		loginCounter:      loginCounter,
	}
}

// RegisterRoutes registers all user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	router.HandleFunc("/users/me", AuthMiddleware(h.GetProfile)).Methods("GET")

	router.HandleFunc("/admin/users", AdminMiddleware(h.ListUsers)).Methods("GET")
	router.HandleFunc("/admin/users", AdminMiddleware(h.CreateUser)).Methods("POST")
	router.HandleFunc("/admin/users/{id}/role", AdminMiddleware(h.ChangeRole)).Methods("PUT")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Self-registration always yields a read-only account. Staff
	// privilege is granted later through the admin role endpoint.
	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to register user")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.loginCounter.WithLabelValues("failure").Inc()
		logger.Logger.Warn().Str("username", req.Username).Msg("Login failed")
		respondError(w, http.StatusUnauthorized, err.Error())
		return
	}

	h.loginCounter.WithLabelValues("success").Inc()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Login successful",
		Data:    resp,
	})
}

// CreateUser handles POST /admin/users. Unlike self-registration, an admin
// may set the role of the created account.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create user")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User created successfully",
		Data:    user,
	})
}

// GetProfile handles GET /users/me
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid token claims")
		return
	}

	user, err := h.getHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    user,
	})
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.listHandler.Handle(query.ListUsersQuery{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list users")
		respondError(w, http.StatusInternalServerError, "Failed to list users")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ChangeRole handles PUT /admin/users/{id}/role
func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req struct {
		Role string `json:"role"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.changeRoleHandler.Handle(command.ChangeRoleCommand{
		UserID: uint(id),
		Role:   req.Role,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to change role")
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Role updated successfully",
		Data:    user,
	})
}
