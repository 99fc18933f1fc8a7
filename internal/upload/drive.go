package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/frostline-io/logvault/internal/archive"
)

// ErrNoDriveCredentials is returned when neither a service-account key nor a
// complete refresh-token triple is configured.
var ErrNoDriveCredentials = errors.New("no drive credentials configured")

type DriveConfig struct {
	FolderID string

	// OAuth delegated-user strategy.
	ClientID     string
	ClientSecret string
	RefreshToken string

	// Service-account strategy. Takes precedence when set.
	ServiceAccountJSON []byte
}

// DriveSink uploads archives into one Google Drive folder with a multipart
// file-create call.
type DriveSink struct {
	service  *drive.Service
	folderID string
}

func NewDriveSink(ctx context.Context, cfg DriveConfig) (*DriveSink, error) {
	httpClient, err := driveHTTPClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &DriveSink{
		service:  svc,
		folderID: cfg.FolderID,
	}, nil
}

func driveHTTPClient(ctx context.Context, cfg DriveConfig) (*http.Client, error) {
	if len(cfg.ServiceAccountJSON) > 0 {
		jwtCfg, err := google.JWTConfigFromJSON(cfg.ServiceAccountJSON, drive.DriveFileScope)
		if err != nil {
			return nil, fmt.Errorf("parse service account key: %w", err)
		}
		return jwtCfg.Client(ctx), nil
	}

	if cfg.ClientID != "" && cfg.ClientSecret != "" && cfg.RefreshToken != "" {
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{drive.DriveFileScope},
		}
		ts := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})
		return oauth2.NewClient(ctx, ts), nil
	}

	return nil, ErrNoDriveCredentials
}

func (s *DriveSink) Upload(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: archive.MIMEType,
		Parents:  []string{s.folderID},
	}

	created, err := s.service.Files.Create(file).
		Media(r, googleapi.ContentType(archive.MIMEType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("create drive file %s: %w", name, err)
	}

	return created.Id, nil
}
