package auth

import "github.com/gin-gonic/gin"

// Keys under which the auth middleware stores the caller on the gin context.
const (
	ContextUserID    = "userID"
	ContextUserName  = "userName"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

func SetPrincipal(c *gin.Context, p *Principal) {
	c.Set(ContextUserID, p.Subject)
	c.Set(ContextUserName, p.Name)
	c.Set(ContextUserEmail, p.Email)
	c.Set(ContextUserRole, p.Role)
}

// PrincipalFrom reads back what SetPrincipal stored. A request that never went
// through the middleware yields an empty principal with the Cliente role.
func PrincipalFrom(c *gin.Context) Principal {
	role, _ := c.Get(ContextUserRole)
	r, _ := role.(Role)
	return Principal{
		Subject: c.GetString(ContextUserID),
		Name:    c.GetString(ContextUserName),
		Email:   c.GetString(ContextUserEmail),
		Role:    r,
	}
}
