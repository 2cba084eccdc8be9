package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/marketplace-next/storefront/internal/http/handlers/shared"
	"github.com/marketplace-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

type authzRolePayload struct {
	Role string `json:"role" binding:"required"`
}

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, roles)
}

// CreateAuthzRole 创建角色
func (h *Handler) CreateAuthzRole(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	var req authzRolePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	role, err := h.AuthzService.EnsureRole(req.Role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	requestLog(c).Infow("admin_authz_role_created",
		"operator_id", handlershared.OptionalUserID(c),
		"role", role,
	)
	response.Success(c, gin.H{"role": role})
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_update_failed", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_granted",
		"operator_id", handlershared.OptionalUserID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// RevokeAuthzPolicy 撤销角色策略
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_update_failed", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_revoked",
		"operator_id", handlershared.OptionalUserID(c),
		"role", req.Role,
		"object", req.Object,
		"action", req.Action,
	)
	response.Success(c, nil)
}

// GetUserRoles 获取用户被分配的角色
func (h *Handler) GetUserRoles(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// SetUserRoles 覆盖设置用户角色
func (h *Handler) SetUserRoles(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	userID, ok := parseUserIDParam(c)
	if !ok {
		return
	}
	var req authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AuthzService.SetUserRoles(userID, req.Roles); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_update_failed", err)
		return
	}
	requestLog(c).Infow("admin_authz_user_roles_updated",
		"operator_id", handlershared.OptionalUserID(c),
		"target_user_id", userID,
		"roles", req.Roles,
	)
	roles, err := h.AuthzService.GetUserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"user_id": userID, "roles": roles})
}

// ReloadAuthzPolicy 从数据库重新加载策略（多实例部署时同步其他节点的修改）
func (h *Handler) ReloadAuthzPolicy(c *gin.Context) {
	if !h.authzReady(c) {
		return
	}
	if err := h.AuthzService.ReloadPolicy(); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	requestLog(c).Infow("admin_authz_policy_reloaded", "operator_id", handlershared.OptionalUserID(c))
	response.Success(c, gin.H{"reloaded": true})
}

func (h *Handler) authzReady(c *gin.Context) bool {
	if h.AuthzService == nil {
		respondError(c, response.CodeInternal, "error.internal_error", nil)
		return false
	}
	return true
}

func parseUserIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return 0, false
	}
	return uint(id), true
}
