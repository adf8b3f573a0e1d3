package services

import (
	"strconv"

	"backend/entity"
	"backend/pkg/apperr"
	"backend/pkg/cache"
	"backend/repository"
)

const emailSettingsCacheKey = "settings:email"

type SettingsService struct {
	uow   *repository.UnitOfWork
	cache *cache.Cache
}

func NewSettingsService(uow *repository.UnitOfWork, c *cache.Cache) *SettingsService {
	return &SettingsService{uow: uow, cache: c}
}

func (s *SettingsService) ListAll() ([]entity.Setting, error) {
	settings, err := s.uow.Settings.ListAll()
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	return settings, nil
}

func (s *SettingsService) GetByKey(key string) (*entity.Setting, error) {
	setting, err := s.uow.Settings.FindByKey(key)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, apperr.NotFound("setting not found")
		}
		return nil, apperr.Unexpected(err)
	}
	return setting, nil
}

func (s *SettingsService) Update(key, value string) (*entity.Setting, error) {
	affected, err := s.uow.Settings.UpdateValue(key, value)
	if err != nil {
		return nil, apperr.Unexpected(err)
	}
	if affected == 0 {
		return nil, apperr.NotFound("setting not found")
	}
	s.cache.Flush()
	return s.GetByKey(key)
}

// ----- Email settings -----

type EmailSettings struct {
	SmtpServer string `json:"smtpServer"`
	SmtpPort   int    `json:"smtpPort"`
	FromEmail  string `json:"fromEmail"`
	Password   string `json:"password"`
	EnableSsl  bool   `json:"enableSsl"`
}

// GetEmailSettings assembles the Email.* rows. Cached; updates invalidate.
func (s *SettingsService) GetEmailSettings() (*EmailSettings, error) {
	if v, ok := s.cache.Get(emailSettingsCacheKey); ok {
		if es, ok := v.(*EmailSettings); ok {
			return es, nil
		}
	}

	rows, err := s.uow.Settings.ListByCategory("Email")
	if err != nil {
		return nil, apperr.Unexpected(err)
	}

	byKey := make(map[string]string, len(rows))
	for _, r := range rows {
		byKey[r.Key] = r.Value
	}

	port := 587
	if p, err := strconv.Atoi(byKey["Email.SmtpPort"]); err == nil {
		port = p
	}
	es := &EmailSettings{
		SmtpServer: byKey["Email.SmtpServer"],
		SmtpPort:   port,
		FromEmail:  byKey["Email.FromEmail"],
		Password:   byKey["Email.Password"],
		EnableSsl:  byKey["Email.EnableSsl"] != "false",
	}
	s.cache.Set(emailSettingsCacheKey, es, cache.DefaultTTL)
	return es, nil
}

func (s *SettingsService) UpdateEmailSettings(in *EmailSettings) (*EmailSettings, error) {
	updates := map[string]string{
		"Email.SmtpServer": in.SmtpServer,
		"Email.SmtpPort":   strconv.Itoa(in.SmtpPort),
		"Email.FromEmail":  in.FromEmail,
		"Email.Password":   in.Password,
		"Email.EnableSsl":  strconv.FormatBool(in.EnableSsl),
	}
	err := s.uow.WithinTx(func(tx *repository.UnitOfWork) error {
		for key, value := range updates {
			if _, err := tx.Settings.UpdateValue(key, value); err != nil {
				return apperr.Unexpected(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.cache.Remove(emailSettingsCacheKey)
	return in, nil
}
