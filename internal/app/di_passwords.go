package app

import (
	"fmt"

	"github.com/allisson/onetimepassgen/internal/config"
	"github.com/allisson/onetimepassgen/internal/passwords/domain"
	passwordsHTTP "github.com/allisson/onetimepassgen/internal/passwords/http"
	passwordsRepository "github.com/allisson/onetimepassgen/internal/passwords/repository"
	passwordsService "github.com/allisson/onetimepassgen/internal/passwords/service"
	passwordsUseCase "github.com/allisson/onetimepassgen/internal/passwords/usecase"
)

type passwordsComponents struct {
	repo           lazy[passwordsUseCase.GeneratedPasswordRepository]
	valueGenerator lazy[passwordsService.ValueGenerator]
	useCase        lazy[passwordsUseCase.GeneratedPasswordUseCase]
	handler        lazy[*passwordsHTTP.GeneratedPasswordHandler]
}

// GeneratedPasswordRepository returns the generated password store for the configured driver.
func (c *Container) GeneratedPasswordRepository() (passwordsUseCase.GeneratedPasswordRepository, error) {
	return c.passwords.repo.get(func() (passwordsUseCase.GeneratedPasswordRepository, error) {
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for generated password repository: %w", err)
		}

		switch c.config.DBDriver {
		case config.DriverPostgres:
			return passwordsRepository.NewPostgreSQLGeneratedPasswordRepository(db), nil
		case config.DriverMySQL:
			return passwordsRepository.NewMySQLGeneratedPasswordRepository(db), nil
		case config.DriverSQLite:
			return passwordsRepository.NewSQLiteGeneratedPasswordRepository(db), nil
		default:
			return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
}

// ValueGenerator returns the generator for the configured password format.
func (c *Container) ValueGenerator() (passwordsService.ValueGenerator, error) {
	return c.passwords.valueGenerator.get(func() (passwordsService.ValueGenerator, error) {
		generator, err := passwordsService.NewValueGenerator(
			domain.FormatType(c.config.GeneratedPasswordFormat),
			c.config.GeneratedPasswordLength,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create value generator: %w", err)
		}
		return generator, nil
	})
}

// GeneratedPasswordUseCase registers the generated password handlers with the
// pipeline and returns the use case sending requests through it. It is wrapped
// with metrics when enabled.
func (c *Container) GeneratedPasswordUseCase() (passwordsUseCase.GeneratedPasswordUseCase, error) {
	return c.passwords.useCase.get(func() (passwordsUseCase.GeneratedPasswordUseCase, error) {
		ttl := c.config.GeneratedPasswordTTL()
		if ttl <= 0 {
			return nil, fmt.Errorf(
				"invalid configuration: GENERATED_PASSWORD_EXPIRATION_SECONDS must be positive, got %d",
				c.config.GeneratedPasswordExpirationSeconds,
			)
		}

		txManager, err := c.TxManager()
		if err != nil {
			return nil, fmt.Errorf("failed to get tx manager for generated password use case: %w", err)
		}
		repo, err := c.GeneratedPasswordRepository()
		if err != nil {
			return nil, fmt.Errorf("failed to get repository for generated password use case: %w", err)
		}
		generator, err := c.ValueGenerator()
		if err != nil {
			return nil, fmt.Errorf("failed to get value generator for generated password use case: %w", err)
		}
		p, err := c.Pipeline()
		if err != nil {
			return nil, fmt.Errorf("failed to get pipeline for generated password use case: %w", err)
		}

		handlers := passwordsUseCase.NewHandlers(
			txManager,
			repo,
			generator,
			c.PrincipalResolver(),
			c.Clock(),
			ttl,
		)
		if err := passwordsUseCase.Register(p, handlers); err != nil {
			return nil, fmt.Errorf("failed to register generated password handlers: %w", err)
		}

		useCase := passwordsUseCase.NewGeneratedPasswordUseCase(p)
		if !c.config.MetricsEnabled {
			return useCase, nil
		}
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for generated password use case: %w", err)
		}
		return passwordsUseCase.NewGeneratedPasswordUseCaseWithMetrics(useCase, businessMetrics), nil
	})
}

// GeneratedPasswordHandler returns the HTTP handler for generated passwords.
func (c *Container) GeneratedPasswordHandler() (*passwordsHTTP.GeneratedPasswordHandler, error) {
	return c.passwords.handler.get(func() (*passwordsHTTP.GeneratedPasswordHandler, error) {
		useCase, err := c.GeneratedPasswordUseCase()
		if err != nil {
			return nil, fmt.Errorf("failed to get generated password use case for handler: %w", err)
		}
		return passwordsHTTP.NewGeneratedPasswordHandler(useCase, c.Logger()), nil
	})
}
