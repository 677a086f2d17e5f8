package gdocs

import (
	"context"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"md2gdocs/config"
)

const userAgent = "md2gdocs/0.1.0"

type Client struct {
	Docs  *docs.Service
	Drive *drive.Service
}

// NewClient authorizes with the credentials named in cfg.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	httpClient, err := HTTPClient(ctx, cfg, stdPrompt())
	if err != nil {
		return nil, err
	}
	return NewClientWithOptions(ctx, option.WithHTTPClient(httpClient))
}

// NewClientWithOptions builds the Docs and Drive services from explicit
// client options.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithUserAgent(userAgent)}, opts...)

	docsSvc, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{Docs: docsSvc, Drive: driveSvc}, nil
}
