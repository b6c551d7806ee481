package menu

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Source opens a menu file for import by path or key.
type Source interface {
	// Open returns a reader over the menu file. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// fileSource implements Source for the local file system.
type fileSource struct {
	logger zerolog.Logger
}

// NewFileSource creates a file-system menu source.
func NewFileSource(logger zerolog.Logger) Source {
	return &fileSource{
		logger: logger.With().Str("component", "menu-file-source").Logger(),
	}
}

func (s *fileSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	s.logger.Info().Str("file", path).Msg("opening menu file")

	file, err := os.Open(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to open menu file")
		return nil, fmt.Errorf("failed to open menu file %s: %w", path, err)
	}
	return file, nil
}

// fallbackSource tries S3 first, then falls back to the local file system.
type fallbackSource struct {
	s3Source   Source
	fileSource Source
	s3Prefix   string
	logger     zerolog.Logger
}

// NewFallbackSource creates a source that tries S3 first, then falls back
// to the local file system. For S3, the prefix is prepended to the path.
func NewFallbackSource(s3Source, fileSource Source, s3Prefix string, logger zerolog.Logger) Source {
	return &fallbackSource{
		s3Source:   s3Source,
		fileSource: fileSource,
		s3Prefix:   s3Prefix,
		logger:     logger.With().Str("component", "menu-fallback-source").Logger(),
	}
}

func (s *fallbackSource) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if s.s3Source != nil {
		s3Key := s.s3Prefix + path

		rc, err := s.s3Source.Open(ctx, s3Key)
		if err == nil {
			s.logger.Info().Str("s3_key", s3Key).Msg("loaded menu from S3")
			return rc, nil
		}

		s.logger.Warn().
			Err(err).
			Str("s3_key", s3Key).
			Msg("failed to load menu from S3, falling back to local file system")
	}

	return s.fileSource.Open(ctx, path)
}
