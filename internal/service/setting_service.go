package service

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"

	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/repository"
	pkgcache "github.com/damoang/pcmall-backend/pkg/cache"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Setting 에러 정의
var (
	ErrInvalidSettingKey   = errors.New("setting key must be lowercase letters, digits or '_'")
	ErrInvalidSettingValue = errors.New("setting value must be valid JSON")
)

var settingKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SettingService 사이트 설정 서비스
type SettingService interface {
	GetPublic(ctx context.Context) (map[string]json.RawMessage, error)
	GetAll() ([]domain.Setting, error)
	Update(ctx context.Context, req *domain.UpdateSettingsRequest) ([]domain.Setting, error)

	// Number reads a numeric setting, accepting 3000 or "3000"
	Number(key string, fallback float64) float64
}

type settingService struct {
	repo  repository.SettingRepository
	cache pkgcache.Service
}

// NewSettingService 생성자. cache 는 nil 가능.
func NewSettingService(repo repository.SettingRepository, cache pkgcache.Service) SettingService {
	if cache == nil {
		cache = pkgcache.NewService(nil)
	}
	return &settingService{repo: repo, cache: cache}
}

// GetPublic 공개 설정 key -> value
func (s *settingService) GetPublic(ctx context.Context) (map[string]json.RawMessage, error) {
	var cached map[string]json.RawMessage
	if err := s.cache.Get(ctx, pkgcache.KeySettings, &cached); cacheHit(s.cache, "settings", err) {
		return cached, nil
	}

	settings, err := s.repo.Public()
	if err != nil {
		return nil, err
	}

	out := make(map[string]json.RawMessage, len(settings))
	for _, st := range settings {
		out[st.Key] = json.RawMessage(st.Value)
	}

	if err := s.cache.Set(ctx, pkgcache.KeySettings, out, pkgcache.TTLSettings); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("settings cache write failed")
	}
	return out, nil
}

func (s *settingService) GetAll() ([]domain.Setting, error) {
	return s.repo.All()
}

// Update 일괄 upsert. is_public 을 생략하면 기존 값을 유지한다.
func (s *settingService) Update(ctx context.Context, req *domain.UpdateSettingsRequest) ([]domain.Setting, error) {
	existing, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	public := make(map[string]bool, len(existing))
	for _, st := range existing {
		public[st.Key] = st.IsPublic
	}

	rows := make([]domain.Setting, 0, len(req.Settings))
	for _, in := range req.Settings {
		if !settingKeyPattern.MatchString(in.Key) {
			return nil, ErrInvalidSettingKey
		}
		if !json.Valid(in.Value) {
			return nil, ErrInvalidSettingValue
		}
		isPublic := public[in.Key]
		if in.IsPublic != nil {
			isPublic = *in.IsPublic
		}
		rows = append(rows, domain.Setting{Key: in.Key, Value: datatypes.JSON(in.Value), IsPublic: isPublic})
	}

	if err := s.repo.Upsert(rows); err != nil {
		return nil, err
	}

	if err := s.cache.Delete(ctx, pkgcache.KeySettings); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Msg("settings cache invalidation failed")
	}
	return s.repo.All()
}

func (s *settingService) Number(key string, fallback float64) float64 {
	setting, err := s.repo.Get(key)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			pkglogger.GetLogger().Warn().Err(err).Str("key", key).Msg("setting lookup failed")
		}
		return fallback
	}

	var n float64
	if err := json.Unmarshal(setting.Value, &n); err == nil {
		return n
	}
	var str string
	if err := json.Unmarshal(setting.Value, &str); err == nil {
		if v, err := strconv.ParseFloat(str, 64); err == nil {
			return v
		}
	}
	return fallback
}
