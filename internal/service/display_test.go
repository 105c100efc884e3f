package service

import (
	"context"
	"errors"
	"testing"

	evMocks "kundenstopper/internal/events/mocks"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
	repoMocks "kundenstopper/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDisplay() (DisplayService, *repoMocks.MockDocumentRepository, *repoMocks.MockSettingRepository, *evMocks.MockPublisher) {
	docs := new(repoMocks.MockDocumentRepository)
	settings := new(repoMocks.MockSettingRepository)
	pub := new(evMocks.MockPublisher)
	return NewDisplayService(docs, settings, pub, logger.Nop()), docs, settings, pub
}

func expectPresentation(s *repoMocks.MockSettingRepository, ctx context.Context, interval, color, indicator string) {
	s.On("Get", ctx, model.SettingCycleInterval, "10").Return(interval, nil)
	s.On("Get", ctx, model.SettingBackgroundColor, "#ffffff").Return(color, nil)
	s.On("Get", ctx, model.SettingProgressIndicator, "progress").Return(indicator, nil)
}

func TestDisplayService_Current(t *testing.T) {
	ctx := context.Background()
	menu := &model.Document{ID: 3, StoredName: "s3.pdf", OriginalName: "Menu.pdf"}

	tests := []struct {
		name       string
		setupMocks func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository)
		want       *model.Display
		wantErr    error
	}{
		{
			name: "newest with defaults",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("0", nil)
				docs.On("Newest", ctx).Return(menu, nil)
				expectPresentation(s, ctx, "10", "#ffffff", "progress")
			},
			want: &model.Display{
				StoredName: "s3.pdf", OriginalName: "Menu.pdf", URL: "/uploads/s3.pdf",
				CycleInterval: 10, BackgroundColor: "#ffffff", ProgressIndicator: "progress",
			},
		},
		{
			name: "pinned document",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("3", nil)
				docs.On("FindByID", ctx, int64(3)).Return(menu, nil)
				expectPresentation(s, ctx, "25", "#000000", "countdown")
			},
			want: &model.Display{
				StoredName: "s3.pdf", OriginalName: "Menu.pdf", URL: "/uploads/s3.pdf",
				CycleInterval: 25, BackgroundColor: "#000000", ProgressIndicator: "countdown",
			},
		},
		{
			name: "corrupt interval falls back to default",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("0", nil)
				docs.On("Newest", ctx).Return(menu, nil)
				expectPresentation(s, ctx, "abc", "#ffffff", "none")
			},
			want: &model.Display{
				StoredName: "s3.pdf", OriginalName: "Menu.pdf", URL: "/uploads/s3.pdf",
				CycleInterval: 10, BackgroundColor: "#ffffff", ProgressIndicator: "none",
			},
		},
		{
			name: "no documents",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("0", nil)
				docs.On("Newest", ctx).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "dangling pin is not repaired",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("9", nil)
				docs.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "garbage selection",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("seven", nil)
			},
			wantErr: ErrNotAvailable,
		},
		{
			name: "store error propagates",
			setupMocks: func(docs *repoMocks.MockDocumentRepository, s *repoMocks.MockSettingRepository) {
				s.On("Get", ctx, model.SettingSelectedPDFID, "0").Return("", errors.New("db fail"))
			},
			wantErr: errors.New("db fail"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, docs, settings, pub := newDisplay()
			tt.setupMocks(docs, settings)

			got, err := svc.Current(ctx)

			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			docs.AssertExpectations(t)
			settings.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestDisplayService_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("pins existing document", func(t *testing.T) {
		svc, docs, settings, pub := newDisplay()
		docs.On("FindByID", ctx, int64(7)).Return(&model.Document{ID: 7}, nil)
		settings.On("Set", ctx, model.SettingSelectedPDFID, "7").Return(nil)
		pub.On("Publish", ctx, "display.selected", mock.Anything).Return(nil)

		doc, err := svc.Select(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), doc.ID)
		settings.AssertExpectations(t)
		pub.AssertExpectations(t)
	})

	t.Run("missing document leaves selection alone", func(t *testing.T) {
		svc, docs, settings, _ := newDisplay()
		docs.On("FindByID", ctx, int64(8)).Return(nil, repository.ErrNotFound)

		_, err := svc.Select(ctx, 8)
		assert.ErrorIs(t, err, ErrNotFound)
		settings.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("select newest", func(t *testing.T) {
		svc, _, settings, pub := newDisplay()
		settings.On("Set", ctx, model.SettingSelectedPDFID, "0").Return(nil)
		pub.On("Publish", ctx, "display.selected", mock.Anything).Return(nil)

		require.NoError(t, svc.SelectNewest(ctx))
		settings.AssertExpectations(t)
	})

	t.Run("select newest store error", func(t *testing.T) {
		svc, _, settings, _ := newDisplay()
		settings.On("Set", ctx, model.SettingSelectedPDFID, "0").Return(errors.New("db fail"))

		assert.EqualError(t, svc.SelectNewest(ctx), "select newest: db fail")
	})
}

func TestDisplayService_ProtectedID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		selected   string
		setupMocks func(docs *repoMocks.MockDocumentRepository)
		want       int64
	}{
		{
			name:     "newest when tracking",
			selected: "0",
			setupMocks: func(docs *repoMocks.MockDocumentRepository) {
				docs.On("Newest", ctx).Return(&model.Document{ID: 12}, nil)
			},
			want: 12,
		},
		{
			name:       "pinned id even if dangling",
			selected:   "4",
			setupMocks: func(docs *repoMocks.MockDocumentRepository) {},
			want:       4,
		},
		{
			name:     "unparsable selection protects newest",
			selected: "x",
			setupMocks: func(docs *repoMocks.MockDocumentRepository) {
				docs.On("Newest", ctx).Return(&model.Document{ID: 5}, nil)
			},
			want: 5,
		},
		{
			name:     "nothing to protect",
			selected: "0",
			setupMocks: func(docs *repoMocks.MockDocumentRepository) {
				docs.On("Newest", ctx).Return(nil, repository.ErrNotFound)
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, docs, settings, _ := newDisplay()
			settings.On("Get", ctx, model.SettingSelectedPDFID, "0").Return(tt.selected, nil)
			tt.setupMocks(docs)

			got, err := svc.ProtectedID(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			docs.AssertExpectations(t)
		})
	}
}
