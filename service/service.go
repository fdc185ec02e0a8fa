package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/secure"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"fashionhub/service/profile"
	"fashionhub/store"
	"fashionhub/store/db"
	"fashionhub/theme"
)

// Service wires the HTTP surface over the store.
type Service struct {
	g  *gin.Engine
	db *sql.DB

	ID      string
	Profile *profile.Profile
	Store   *store.Store
	Ambient *theme.Signal
}

func timeoutMiddleware() gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(30*time.Second),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(ctx *gin.Context) {
			ctx.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func NewService(ctx context.Context, profile *profile.Profile) (*Service, error) {
	if profile.Mode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	g := gin.New()

	db := db.NewDB(profile)
	if err := db.Open(ctx); err != nil {
		return nil, errors.Wrap(err, "cannot open db")
	}

	s := &Service{
		g:       g,
		db:      db.DBInstance,
		Profile: profile,
		Ambient: theme.NewSignal(false),
	}

	storeInstance := store.New(db.DBInstance, profile)
	s.Store = storeInstance

	g.Use(gin.LoggerWithConfig(gin.LoggerConfig{}))
	g.Use(gin.Recovery())

	g.Use(gzip.Gzip(gzip.DefaultCompression))

	g.Use(cors.Default())

	g.Use(secure.New(secure.Config{}))

	g.Use(timeoutMiddleware())

	serviceID, err := s.getSystemServiceID(ctx)
	if err != nil {
		return nil, err
	}
	s.ID = serviceID

	embedFrontend(g)

	secret := "fashionhub"
	if profile.Mode == "prod" {
		secret, err = s.getSystemSecretSessionName(ctx)
		if err != nil {
			return nil, err
		}
	}

	apiGroup := g.Group("/api")
	apiGroup.Use(func(ctx *gin.Context) {
		JWTMiddleware(s, ctx, secret)
	})
	s.registerSystemRoutes(apiGroup)
	s.registerAuthRoutes(apiGroup, secret)
	s.registerUserRoutes(apiGroup)
	s.registerPreferenceRoutes(apiGroup)
	s.registerThemeRoutes(apiGroup)
	s.registerAccessRoutes(apiGroup)
	s.registerAssetRoutes(apiGroup)
	s.registerStorageRoutes(apiGroup)

	return s, nil
}

func (s *Service) Run(ctx context.Context) error {
	return s.g.Run(fmt.Sprintf(":%d", s.Profile.Port))
}

// Engine exposes the router, mainly for httptest.
func (s *Service) Engine() *gin.Engine {
	return s.g
}
