package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jlwbr/workplanner-sub000/internal/domain"
	"github.com/jlwbr/workplanner-sub000/internal/repository"
)

type channelService struct {
	channels repository.ChannelRepo
}

func NewChannelService(channels repository.ChannelRepo) ChannelService {
	return &channelService{channels: channels}
}

func (s *channelService) Create(ctx context.Context, c *domain.Channel) error {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := nowUTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.channels.Create(ctx, c)
}

func (s *channelService) List(ctx context.Context, includeRemoved bool) ([]*domain.Channel, error) {
	return s.channels.List(ctx, includeRemoved)
}

func (s *channelService) Get(ctx context.Context, id string) (*domain.Channel, error) {
	return s.channels.GetByID(ctx, id)
}

// Remove soft-deletes the channel. Existing plannings stay; the channel is
// left out of future generation runs.
func (s *channelService) Remove(ctx context.Context, id string) error {
	return s.channels.SetRemoved(ctx, id, true)
}

func (s *channelService) Restore(ctx context.Context, id string) error {
	return s.channels.SetRemoved(ctx, id, false)
}
