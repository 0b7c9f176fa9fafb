package app

import (
	"fmt"
	"time"

	"github.com/allisson/onetimepassgen/internal/config"
	identityDomain "github.com/allisson/onetimepassgen/internal/identity/domain"
	identityHTTP "github.com/allisson/onetimepassgen/internal/identity/http"
	identityRepository "github.com/allisson/onetimepassgen/internal/identity/repository"
	identityService "github.com/allisson/onetimepassgen/internal/identity/service"
	identityUseCase "github.com/allisson/onetimepassgen/internal/identity/usecase"
	"github.com/allisson/onetimepassgen/internal/pipeline"
)

type identityComponents struct {
	userRepo        lazy[identityUseCase.UserRepository]
	secretService   lazy[identityService.SecretService]
	tokenService    lazy[identityService.TokenService]
	userUseCase     lazy[identityUseCase.UserUseCase]
	tokenUseCase    lazy[identityUseCase.TokenUseCase]
	identityUseCase lazy[identityUseCase.IdentityUseCase]
	tokenHandler    lazy[*identityHTTP.TokenHandler]
}

// PrincipalResolver returns the resolver reading the authenticated user from the
// request context.
func (c *Container) PrincipalResolver() pipeline.PrincipalResolver {
	return identityDomain.ContextPrincipalResolver{}
}

// UserRepository returns the user repository for the configured driver.
func (c *Container) UserRepository() (identityUseCase.UserRepository, error) {
	return c.identity.userRepo.get(func() (identityUseCase.UserRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for user repository: %w", err)
		}

		switch c.config.DBDriver {
		case config.DriverPostgres:
			return identityRepository.NewPostgreSQLUserRepository(db), nil
		case config.DriverMySQL:
			return identityRepository.NewMySQLUserRepository(db), nil
		case config.DriverSQLite:
			return identityRepository.NewSQLiteUserRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// SecretService returns the password hashing service.
func (c *Container) SecretService() (identityService.SecretService, error) {
	return c.identity.secretService.get(func() (identityService.SecretService, error) {
		return identityService.NewSecretService(), nil
	})
}

// TokenService returns the bearer token signer.
func (c *Container) TokenService() (identityService.TokenService, error) {
	return c.identity.tokenService.get(func() (identityService.TokenService, error) {
		clk := c.Clock()
		return identityService.NewTokenService(
			c.config.AuthTokenSigningKey,
			c.config.AuthTokenIssuer,
			func() time.Time { return clk.Now() },
		), nil
	})
}

// UserUseCase returns the user management use case used by the CLI.
func (c *Container) UserUseCase() (identityUseCase.UserUseCase, error) {
	return c.identity.userUseCase.get(func() (identityUseCase.UserUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
		}
		secretService, err := c.SecretService()
		if err != nil {
			return nil, fmt.Errorf("failed to get secret service for user use case: %w", err)
		}
		return identityUseCase.NewUserUseCase(userRepo, secretService, c.Clock()), nil
	})
}

// TokenUseCase returns the token use case, wrapped with metrics when enabled.
func (c *Container) TokenUseCase() (identityUseCase.TokenUseCase, error) {
	return c.identity.tokenUseCase.get(func() (identityUseCase.TokenUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for token use case: %w", err)
		}
		secretService, err := c.SecretService()
		if err != nil {
			return nil, fmt.Errorf("failed to get secret service for token use case: %w", err)
		}
		tokenService, err := c.TokenService()
		if err != nil {
			return nil, fmt.Errorf("failed to get token service for token use case: %w", err)
		}

		useCase := identityUseCase.NewTokenUseCase(
			userRepo,
			secretService,
			tokenService,
			c.Clock(),
			c.config.AuthTokenExpiration,
		)

		if !c.config.MetricsEnabled {
			return useCase, nil
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for token use case: %w", err)
		}
		return identityUseCase.NewTokenUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// IdentityUseCase returns the user name, role and policy lookups used by the pipeline.
func (c *Container) IdentityUseCase() (identityUseCase.IdentityUseCase, error) {
	return c.identity.identityUseCase.get(func() (identityUseCase.IdentityUseCase, error) {
		userRepo, err := c.UserRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get user repository for identity use case: %w", err)
		}
		policies, err := c.config.Policies()
		if err != nil {
			return nil, fmt.Errorf("invalid authorization policies: %w", err)
		}
		return identityUseCase.NewIdentityUseCase(userRepo, policies), nil
	})
}

// TokenHandler returns the HTTP handler for token issuance.
func (c *Container) TokenHandler() (*identityHTTP.TokenHandler, error) {
	return c.identity.tokenHandler.get(func() (*identityHTTP.TokenHandler, error) {
		tokenUseCase, err := c.TokenUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get token use case for token handler: %w", err)
		}
		return identityHTTP.NewTokenHandler(tokenUseCase, c.Logger()), nil
	})
}
