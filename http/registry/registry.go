package registry

import (
	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"

	"github.com/benedict-erwin/weather-insight/internal/app"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

type SetupFunc func(g *echo.Group, c *app.Container)

var versionRegistry = make(map[string][]SetupFunc)

// Register router setup function for specific API version
func Register(version string, setup SetupFunc) {
	logger.WithScope("RegistryRegister").Debug().Str("version", version).Msg("Registering router for version")
	versionRegistry[version] = append(versionRegistry[version], setup)
}

// SetupAllRoutes applies all registered routes
func SetupAllRoutes(e *echo.Echo, c *app.Container) {
	// Initialize validator
	setupValidator(e)

	// Setup logger scope
	log := logger.WithScope("SetupAllRoutes")

	// Register routes
	if len(versionRegistry) == 0 {
		log.Warn().Msg("No routes registered in versionRegistry")
		return
	}
	for version, setups := range versionRegistry {
		log.Info().Str("version", version).Int("routes", len(setups)).Msg("Setting up version group")
		g := e.Group("/" + version)
		for _, setup := range setups {
			setup(g, c)
		}
	}
}

// setupValidator configures request validation using go-playground/validator
func setupValidator(e *echo.Echo) {
	e.Validator = &CustomValidator{validator: validator.New()}
}

type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates struct fields using validator tags
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
