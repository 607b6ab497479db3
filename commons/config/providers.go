package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"lifeweeks/commons/routes"
	cache "lifeweeks/internal/cache/iface"
	redisCache "lifeweeks/internal/cache/redis"
	coordinator "lifeweeks/internal/coordinator/iface"
	zkCoordinator "lifeweeks/internal/coordinator/zk"
	"lifeweeks/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx/fxevent"
)

// EnvOr returns the value of an environment variable, falling back to a
// local-development default when unset.
func EnvOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// EnvIntOr is EnvOr for integer-valued variables. Unparseable values fall
// back too.
func EnvIntOr(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// ProvideLogger creates and configures the logger for the application
func ProvideLogger() (logger.Logger, error) {
	if EnvOr("APP_ENV", "development") == "production" {
		return logger.NewZapLogger()
	}
	return logger.NewZapLoggerForDev()
}

// ProvideFxLogger creates the FX event logger using the application logger
func ProvideFxLogger(log logger.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{
		Logger: log.(*logger.ZapLogger).Logger(),
	}
}

// ProvideRouteDependencies creates route dependencies
func ProvideRouteDependencies(log logger.Logger) routes.RouteDependencies {
	return routes.RouteDependencies{
		Logger: log,
	}
}

// ProvideRouter creates and configures the Gin router with all routes
func ProvideRouter(
	config routes.RouterConfig,
	deps routes.RouteDependencies,
	routeInitializer func(*gin.Engine, routes.RouteDependencies),
) *gin.Engine {
	router := routes.NewRouter(config, deps)
	routeInitializer(router, deps)
	return router
}

func loadAWSConfig(endpoint, region string) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				if endpoint != "" {
					return aws.Endpoint{
						URL:           endpoint,
						SigningRegion: region,
					}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			})),
	)
}

// ProvideSQSClient provides an SQS client (for LocalStack or AWS)
func ProvideSQSClient() (*sqs.Client, error) {
	cfg, err := loadAWSConfig(
		EnvOr("SQS_ENDPOINT", "http://localhost:4566"),
		EnvOr("AWS_REGION", "us-east-1"),
	)
	if err != nil {
		return nil, err
	}
	return sqs.NewFromConfig(cfg), nil
}

// ProvideDynamoDBClient provides DynamoDB client
func ProvideDynamoDBClient() (*awsdynamodb.Client, error) {
	cfg, err := loadAWSConfig(
		EnvOr("DYNAMODB_ENDPOINT", "http://localhost:9000"),
		EnvOr("AWS_REGION", "us-east-1"),
	)
	if err != nil {
		return nil, err
	}
	return awsdynamodb.NewFromConfig(cfg), nil
}

// ProvideZooKeeperCoordinator provides a ZooKeeper coordinator for
// cross-runtime coordination
func ProvideZooKeeperCoordinator(log logger.Logger) (coordinator.Coordinator, error) {
	servers := []string{EnvOr("ZOOKEEPER_ADDR", "localhost:2181")}
	sessionTimeout := 60 * time.Second

	return zkCoordinator.NewZKCoordinator(servers, sessionTimeout, log)
}

// ProvideRedisCache provides a Redis cache client
func ProvideRedisCache(log logger.Logger) (cache.Cache, error) {
	return redisCache.NewRedisCache(
		EnvOr("REDIS_ADDR", "localhost:6379"),
		os.Getenv("REDIS_PASSWORD"),
		EnvIntOr("REDIS_DB", 0),
		log,
	)
}
