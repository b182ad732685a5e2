package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"orderflow/internal/domain/entities"
	"orderflow/pkg"
	"orderflow/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	HeaderActorID    = "X-Actor-ID"
	HeaderActorRole  = "X-Actor-Role"
	HeaderActorAdmin = "X-Actor-Admin"
	HeaderRequestID  = "X-Request-ID"

	actorKey = "actor"
)

var errMissingActor = pkg.NewDomainErrorSimple("MISSING_ACTOR", "X-Actor-ID and a valid X-Actor-Role are required", http.StatusUnauthorized)

// ActorMiddleware resolves the acting identity from headers set by the
// upstream gateway and tags the request context for logging. Authentication
// is not done here.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		role, _ := entities.ParseRole(c.GetHeader(HeaderActorRole))
		admin, _ := strconv.ParseBool(strings.TrimSpace(c.GetHeader(HeaderActorAdmin)))
		actor := entities.Actor{
			ID:      strings.TrimSpace(c.GetHeader(HeaderActorID)),
			Role:    role,
			IsAdmin: admin || role == entities.RoleAdmin,
		}
		c.Set(actorKey, actor)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		if actor.ID != "" {
			ctx = logger.WithActorID(ctx, actor.ID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requireActor writes 401 and returns false when no usable actor was sent.
func requireActor(c *gin.Context) (entities.Actor, bool) {
	v, _ := c.Get(actorKey)
	actor, _ := v.(entities.Actor)
	if !actor.Valid() {
		c.JSON(errMissingActor.HTTPStatus, errMissingActor.ToHTTPError())
		return entities.Actor{}, false
	}
	return actor, true
}
