package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kisan-be/internal/admin"
	"kisan-be/internal/apperror"
	"kisan-be/internal/auth"
	"kisan-be/internal/user"
	"kisan-be/internal/vendor"
)

// bind decodes the body only; services run their own validation.
func bind(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		respondError(c, apperror.Validation("invalid request body", map[string]string{"body": err.Error()}))
		return false
	}
	return true
}

func setAccessCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.AccessTokenCookie, token, int(auth.DefaultTokenTTL.Seconds()), "/", "", false, true)
}

func (h *Handler) registerUser(c *gin.Context) {
	var in user.RegisterInput
	if !bind(c, &in) {
		return
	}
	res, err := h.users.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	setAccessCookie(c, res.Token)
	respond(c, http.StatusCreated, "registration successful", res)
}

func (h *Handler) loginUser(c *gin.Context) {
	var in user.LoginInput
	if !bind(c, &in) {
		return
	}
	res, err := h.users.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	setAccessCookie(c, res.Token)
	respond(c, http.StatusOK, "login successful", res)
}

func (h *Handler) getProfile(c *gin.Context) {
	u, err := h.users.GetProfile(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", u)
}

func (h *Handler) registerVendor(c *gin.Context) {
	var in vendor.RegisterInput
	if !bind(c, &in) {
		return
	}
	v, err := h.vendors.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "registration successful, please log in", v)
}

func (h *Handler) loginVendor(c *gin.Context) {
	var in vendor.LoginInput
	if !bind(c, &in) {
		return
	}
	sess, err := h.vendors.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "login successful", sess)
}

func (h *Handler) getVendor(c *gin.Context) {
	v, err := h.vendors.GetByID(c.Request.Context(), callerFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", v)
}

func (h *Handler) loginAdmin(c *gin.Context) {
	var in admin.LoginInput
	if !bind(c, &in) {
		return
	}
	token, err := h.admin.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	setAccessCookie(c, token)
	respond(c, http.StatusOK, "login successful", gin.H{"token": token})
}

func (h *Handler) adminOverview(c *gin.Context) {
	o, err := h.admin.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, "", o)
}
