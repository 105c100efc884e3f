package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"kundenstopper/internal/events"
	"kundenstopper/internal/logger"
	"kundenstopper/internal/model"
	"kundenstopper/internal/repository"
)

const (
	defaultCycleInterval   = 10
	defaultAutoCleanupDays = 180

	// MaxCleanupDays bounds the retention window accepted from admins.
	MaxCleanupDays = 36500
)

// Field rules. The colour rule only checks shape, not hex digits.
const (
	rulePositive  = "gt=0"
	ruleDays      = "gt=0,lte=36500" // MaxCleanupDays
	ruleColor     = "len=7,startswith=#"
	ruleIndicator = "oneof=countdown progress none"
	ruleBoolean   = "boolean"
)

// SettingsUpdate carries the raw values of one display settings request.
// A nil field is left untouched.
type SettingsUpdate struct {
	CycleInterval     *string
	BackgroundColor   *string
	ProgressIndicator *string
}

// RetentionUpdate carries the raw values of one retention settings request.
type RetentionUpdate struct {
	AutoCleanupEnabled *string
	AutoCleanupDays    *string
}

// SettingsService reads and validates display and retention settings.
type SettingsService interface {
	// EnsureDefaults stores the default value of every key that has none.
	EnsureDefaults(ctx context.Context) error

	// Get returns a typed snapshot; missing or corrupt values read as defaults.
	Get(ctx context.Context) (*model.Settings, error)

	// Update validates each field on its own and applies the valid ones.
	// Field errors are returned together as *ValidationError.
	Update(ctx context.Context, in SettingsUpdate) (*model.Settings, error)

	// UpdateRetention does the same for the auto cleanup settings.
	UpdateRetention(ctx context.Context, in RetentionUpdate) (*model.Settings, error)
}

type settingsService struct {
	settings repository.SettingRepository
	validate *validator.Validate
	events   events.Publisher
	log      *logger.Logger
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(settings repository.SettingRepository, pub events.Publisher, log *logger.Logger) SettingsService {
	return &settingsService{
		settings: settings,
		validate: validator.New(),
		events:   pub,
		log:      log.With(logger.Fields{"component": "settings"}),
	}
}

func (s *settingsService) EnsureDefaults(ctx context.Context) error {
	if err := s.settings.Seed(ctx, model.DefaultSettings()); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}

func (s *settingsService) Get(ctx context.Context) (*model.Settings, error) {
	all, err := s.settings.All(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot(all), nil
}

// change is one validated key/value pair waiting to be written.
type change struct {
	key, value string
}

func (s *settingsService) Update(ctx context.Context, in SettingsUpdate) (*model.Settings, error) {
	verr := &ValidationError{}
	var changes []change

	if in.CycleInterval != nil {
		if v, ok := s.positiveInt(*in.CycleInterval, rulePositive); ok {
			changes = append(changes, change{model.SettingCycleInterval, v})
		} else {
			verr.add(model.SettingCycleInterval, "must be a positive number of seconds")
		}
	}
	if in.BackgroundColor != nil {
		v := strings.TrimSpace(*in.BackgroundColor)
		if s.validate.Var(v, ruleColor) == nil {
			changes = append(changes, change{model.SettingBackgroundColor, v})
		} else {
			verr.add(model.SettingBackgroundColor, "must be a colour like #aabbcc")
		}
	}
	if in.ProgressIndicator != nil {
		v := strings.TrimSpace(*in.ProgressIndicator)
		if s.validate.Var(v, ruleIndicator) == nil {
			changes = append(changes, change{model.SettingProgressIndicator, v})
		} else {
			verr.add(model.SettingProgressIndicator, "must be one of countdown, progress, none")
		}
	}

	return s.apply(ctx, changes, verr)
}

func (s *settingsService) UpdateRetention(ctx context.Context, in RetentionUpdate) (*model.Settings, error) {
	verr := &ValidationError{}
	var changes []change

	if in.AutoCleanupEnabled != nil {
		v := strings.TrimSpace(*in.AutoCleanupEnabled)
		if s.validate.Var(v, ruleBoolean) == nil {
			b, _ := strconv.ParseBool(v)
			changes = append(changes, change{model.SettingAutoCleanupEnabled, strconv.FormatBool(b)})
		} else {
			verr.add(model.SettingAutoCleanupEnabled, "must be true or false")
		}
	}
	if in.AutoCleanupDays != nil {
		if v, ok := s.positiveInt(*in.AutoCleanupDays, ruleDays); ok {
			changes = append(changes, change{model.SettingAutoCleanupDays, v})
		} else {
			verr.add(model.SettingAutoCleanupDays, fmt.Sprintf("must be between 1 and %d days", MaxCleanupDays))
		}
	}

	return s.apply(ctx, changes, verr)
}

// apply writes every valid change even when other fields failed validation.
// A store error aborts immediately.
func (s *settingsService) apply(ctx context.Context, changes []change, verr *ValidationError) (*model.Settings, error) {
	applied := make(map[string]string, len(changes))
	for _, c := range changes {
		if err := s.settings.Set(ctx, c.key, c.value); err != nil {
			return nil, fmt.Errorf("set %s: %w", c.key, err)
		}
		applied[c.key] = c.value
	}

	if len(applied) > 0 {
		s.log.Info("settings_updated", logger.Fields{"applied": applied})
		publish(ctx, s.events, s.log, events.SettingsUpdated, applied)
	}
	if err := verr.errOrNil(); err != nil {
		s.log.Warn("settings_rejected", logger.Fields{"fields": verr.Fields})
		return nil, err
	}
	return s.Get(ctx)
}

// positiveInt returns the canonical form of raw if it is an integer
// satisfying rule.
func (s *settingsService) positiveInt(raw, rule string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || s.validate.Var(n, rule) != nil {
		return "", false
	}
	return strconv.Itoa(n), true
}

func snapshot(all map[string]string) *model.Settings {
	defaults := model.DefaultSettings()
	get := func(key string) string {
		if v, ok := all[key]; ok {
			return v
		}
		return defaults[key]
	}

	selected, err := strconv.ParseInt(get(model.SettingSelectedPDFID), 10, 64)
	if err != nil {
		selected = 0
	}
	return &model.Settings{
		SelectedPDFID:      selected,
		CycleInterval:      positiveOr(get(model.SettingCycleInterval), defaultCycleInterval),
		BackgroundColor:    get(model.SettingBackgroundColor),
		ProgressIndicator:  get(model.SettingProgressIndicator),
		AutoCleanupEnabled: cleanupEnabled(get(model.SettingAutoCleanupEnabled)),
		AutoCleanupDays:    positiveOr(get(model.SettingAutoCleanupDays), defaultAutoCleanupDays),
	}
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// cleanupEnabled accepts only the literal "true", in any case.
func cleanupEnabled(v string) bool {
	return strings.EqualFold(v, "true")
}
