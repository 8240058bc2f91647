package config

import (
	"fmt"
)

type QueueConfig struct {
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	URL       string `mapstructure:"url"`
	QueueName string `mapstructure:"queue-name"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Username == "" {
		return fmt.Errorf("queue username is required")
	}
	if cfg.Password == "" {
		return fmt.Errorf("queue password is required")
	}
	if cfg.URL == "" {
		return fmt.Errorf("queue url is required")
	}
	if cfg.QueueName == "" {
		return fmt.Errorf("queue name is required")
	}
	return nil
}

func (cfg *QueueConfig) AmqpURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s", cfg.Username, cfg.Password, cfg.URL)
}
