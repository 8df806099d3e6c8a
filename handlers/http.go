// Package handlers contains the HTTP surface of the service registry.
package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"

	"serviceregistry/interfaces"
	"serviceregistry/service"
)

// HTTPServer exposes the registry engine over HTTP.
type HTTPServer struct {
	registry interfaces.Registry
	adminKey string
	shutdown func()
	logger   log.Logger
}

// NewHTTPServer creates a new HTTPServer. shutdown is invoked after a
// successful POST /admin/shutdown response; main wires it to the same
// path as SIGTERM.
func NewHTTPServer(registry interfaces.Registry, adminKey string, shutdown func(), logger log.Logger) *HTTPServer {
	logger = log.WithPrefix(logger, "component", "HTTPServer")
	return &HTTPServer{
		registry: registry,
		adminKey: adminKey,
		shutdown: shutdown,
		logger:   logger,
	}
}

// RegisterRoutes wires every route of the boundary contract.
func RegisterRoutes(e *echo.Echo, s *HTTPServer) {
	e.GET("/", s.Root)
	e.POST("/service", s.RegisterInstance)

	auth := InstanceAuth(s.registry)
	e.GET("/services/:type", s.GetInstancesByType, auth)
	e.GET("/service/:id", s.GetInstanceByID, auth)
	e.DELETE("/service/:id", s.UnregisterInstance, auth)

	admin := AdminAuth(s.adminKey)
	e.GET("/admin/health", s.AdminHealth, admin)
	e.POST("/admin/shutdown", s.AdminShutdown, admin)
}

// Root (GET /) answers a plain text liveness line.
func (s *HTTPServer) Root(ectx echo.Context) error {
	return ectx.String(http.StatusOK, "Service Registry is running")
}

// RegisterInstance (POST /service) registers a new instance. The caller
// authorizes with the registration key as a bearer token; the instance
// host is derived from the request.
func (s *HTTPServer) RegisterInstance(ectx echo.Context) error {
	regKey, err := bearerToken(ectx)
	if err != nil {
		return err
	}

	var req RegisterRequest
	if err := ectx.Bind(&req); err != nil {
		return service.NewBadParameterError("invalid request body", err)
	}
	if err := ectx.Validate(&req); err != nil {
		return err
	}

	result, err := s.registry.Register(fromRegisterRequest(req, ectx.RealIP()), regKey)
	if err != nil {
		return err
	}

	return ectx.JSON(http.StatusCreated, service.OK(RegisterResponse{
		ServiceID: result.ID,
		Token:     result.Token,
	}))
}

// GetInstancesByType (GET /services/:type) lists the healthy instances
// of one service type. A type with no registered record at all is an
// unknown type.
func (s *HTTPServer) GetInstancesByType(ectx echo.Context) error {
	serviceType := ectx.Param("type")

	instances := s.registry.GetInstancesByType(serviceType)
	if len(instances) == 0 && !s.registry.HasServiceType(serviceType) {
		return service.NewBadParameterError("unknown service type", nil)
	}

	return ectx.JSON(http.StatusOK, service.OK(toInstancesResponse(instances)))
}

// GetInstanceByID (GET /service/:id) returns one instance regardless of
// health, or an empty envelope when the id is absent.
func (s *HTTPServer) GetInstanceByID(ectx echo.Context) error {
	id := ectx.Param("id")

	rec, ok := s.registry.GetInstanceByID(id)
	if !ok {
		return ectx.JSON(http.StatusOK, service.OK(nil))
	}
	return ectx.JSON(http.StatusOK, service.OK(toInstanceInfo(rec)))
}

// UnregisterInstance (DELETE /service/:id) removes the instance.
func (s *HTTPServer) UnregisterInstance(ectx echo.Context) error {
	id := ectx.Param("id")

	if err := s.registry.Unregister(id); err != nil {
		return err
	}
	return ectx.JSON(http.StatusOK, service.OK(UnregisterResponse{ServiceID: id}))
}

// AdminHealth (GET /admin/health) reports registry-wide counters.
func (s *HTTPServer) AdminHealth(ectx echo.Context) error {
	instances, serviceTypes := s.registry.Counts()

	return ectx.JSON(http.StatusOK, service.OK(AdminHealthResponse{
		Status:        "UP",
		Timestamp:     time.Now().UnixMilli(),
		InstanceCount: instances,
		ServiceCount:  serviceTypes,
	}))
}

// AdminShutdown (POST /admin/shutdown) acknowledges, then initiates the
// same shutdown path as SIGTERM.
func (s *HTTPServer) AdminShutdown(ectx echo.Context) error {
	if err := ectx.JSON(http.StatusOK, service.OK(map[string]string{"message": "shutting down"})); err != nil {
		return err
	}
	if s.shutdown != nil {
		go s.shutdown()
	}
	return nil
}

// bearerToken extracts the Bearer credential from Authorization.
func bearerToken(ectx echo.Context) (string, error) {
	header := ectx.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if header == "" || !strings.HasPrefix(header, prefix) {
		return "", service.NewAuthenticationError("missing bearer registration key", nil)
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", service.NewAuthenticationError("missing bearer registration key", nil)
	}
	return token, nil
}
