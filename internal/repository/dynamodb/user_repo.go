package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"lifeweeks/internal/domain"
	"lifeweeks/internal/logger"
	repository "lifeweeks/internal/repository/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type userRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    logger.Logger
}

// NewUserRepository creates a new DynamoDB user repository
func NewUserRepository(client *dynamodb.Client, log logger.Logger) repository.UserRepository {
	return &userRepository{
		client:    client,
		tableName: "users",
		logger:    log.With(logger.String("component", "user_repository")),
	}
}

func (r *userRepository) Save(ctx context.Context, profile *domain.Profile) error {
	r.logger.Debug("saving user profile",
		logger.Int64("telegram_id", profile.TelegramID))

	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		r.logger.Error("failed to marshal user profile", logger.Error(err))
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})

	if err != nil {
		r.logger.Error("failed to save user profile", logger.Error(err))
		return fmt.Errorf("failed to save user profile: %w", err)
	}

	r.logger.Info("user profile saved",
		logger.Int64("telegram_id", profile.TelegramID))

	return nil
}

func (r *userRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*domain.Profile, error) {
	r.logger.Debug("getting user profile",
		logger.Int64("telegram_id", telegramID))

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"telegram_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(telegramID, 10)},
		},
	})

	if err != nil {
		r.logger.Error("failed to get user profile", logger.Error(err))
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: telegram_id=%d", repository.ErrNotFound, telegramID)
	}

	var profile domain.Profile
	if err := attributevalue.UnmarshalMap(result.Item, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
	}

	return &profile, nil
}

func (r *userRepository) Delete(ctx context.Context, telegramID int64) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"telegram_id": &types.AttributeValueMemberN{Value: strconv.FormatInt(telegramID, 10)},
		},
	})

	if err != nil {
		r.logger.Error("failed to delete user profile", logger.Error(err))
		return fmt.Errorf("failed to delete user profile: %w", err)
	}

	r.logger.Info("user profile deleted",
		logger.Int64("telegram_id", telegramID))

	return nil
}

func (r *userRepository) ListNotifiable(ctx context.Context) ([]*domain.Profile, error) {
	r.logger.Debug("listing users with notifications enabled")

	var profiles []*domain.Profile
	var lastKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("settings.notifications = :enabled"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":enabled": &types.AttributeValueMemberBOOL{Value: true},
			},
			ExclusiveStartKey: lastKey,
		})

		if err != nil {
			r.logger.Error("failed to scan users", logger.Error(err))
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}

		for _, item := range result.Items {
			var profile domain.Profile
			if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
				return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
			}
			profiles = append(profiles, &profile)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	r.logger.Info("listed notifiable users", logger.Int("count", len(profiles)))

	return profiles, nil
}
