package notifications

import (
	"context"
	"fmt"
	"log"
	"sync"

	"ledgerly/internal/shared/config"

	"github.com/google/uuid"
)

// NotificationService wires the producer, consumer workers and email
// delivery together. It satisfies the session layer's Notifier so
// registration can fire a welcome email without knowing about Kafka.
type NotificationService interface {
	NotifyUserRegistered(ctx context.Context, userID uuid.UUID, email, name string) error

	Start(ctx context.Context) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type AccountNotificationService struct {
	cfg          *config.Config
	producer     NotificationProducer
	consumer     NotificationConsumer
	emailService EmailService

	isRunning bool
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewAccountNotificationService(cfg *config.Config) (*AccountNotificationService, error) {
	var emailService EmailService
	if cfg.Email.SMTPHost != "" && cfg.Email.SMTPUsername != "" {
		smtpService, err := NewSMTPEmailService(&SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
			UseTLS:    true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create SMTP email service: %w", err)
		}
		emailService = smtpService
	} else {
		log.Printf("📧 SMTP not configured, falling back to mock email delivery")
		emailService = NewMockEmailService()
	}

	producerConfig := DefaultKafkaProducerConfig()
	producerConfig.Brokers = cfg.Kafka.Brokers
	producerConfig.NotificationTopic = cfg.Kafka.NotificationTopic

	producer, err := NewKafkaNotificationProducer(producerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification producer: %w", err)
	}

	consumerConfig := DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.NotificationTopic}
	consumerConfig.GroupID = cfg.Kafka.ConsumerGroupID

	consumer, err := NewKafkaNotificationConsumer(consumerConfig, emailService)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification consumer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	log.Printf("📧 Account notification service initialized (topic: %s)", cfg.Kafka.NotificationTopic)

	return &AccountNotificationService{
		cfg:          cfg,
		producer:     producer,
		consumer:     consumer,
		emailService: emailService,
		isRunning:    false,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

func (ans *AccountNotificationService) Start(ctx context.Context) error {
	ans.mu.Lock()
	defer ans.mu.Unlock()

	if ans.isRunning {
		return fmt.Errorf("notification service is already running")
	}

	log.Printf("🚀 Starting account notification service...")

	err := ans.consumer.StartConsumers(ans.ctx, ans.cfg.Kafka.ConsumerWorkers)
	if err != nil {
		return fmt.Errorf("failed to start consumers: %w", err)
	}

	ans.isRunning = true
	log.Printf("✅ Account notification service started successfully")

	return nil
}

func (ans *AccountNotificationService) Stop() error {
	ans.mu.Lock()
	defer ans.mu.Unlock()

	if !ans.isRunning {
		return fmt.Errorf("notification service is not running")
	}

	log.Printf("🛑 Stopping account notification service...")

	ans.cancel()

	if err := ans.consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}

	if err := ans.producer.Close(); err != nil {
		log.Printf("Error closing producer: %v", err)
	}

	ans.isRunning = false
	log.Printf("✅ Account notification service stopped")

	return nil
}

// NotifyUserRegistered publishes a welcome notification for a freshly
// registered account.
func (ans *AccountNotificationService) NotifyUserRegistered(ctx context.Context, userID uuid.UUID, email, name string) error {
	notification := NewWelcomeNotification(userID, email, name)
	return ans.producer.PublishNotification(ctx, notification)
}

func (ans *AccountNotificationService) HealthCheck(ctx context.Context) error {
	ans.mu.RLock()
	isRunning := ans.isRunning
	ans.mu.RUnlock()

	if !isRunning {
		return fmt.Errorf("notification service is not running")
	}

	if err := ans.producer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("producer health check failed: %w", err)
	}

	if err := ans.consumer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("consumer health check failed: %w", err)
	}

	return nil
}
