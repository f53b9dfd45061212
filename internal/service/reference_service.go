// internal/service/reference_service.go
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"
	"cyberwallet-api/internal/validate"
)

// availabilityTTL bounds how stale an email/username availability answer may
// be. Registration re-checks under its own transaction anyway.
const availabilityTTL = 30 * time.Second

// ReferenceService defines the interface for country/province lookups and
// the registration availability checks.
type ReferenceService interface {
	Countries(ctx context.Context) ([]string, error)
	CountriesWithIDs(ctx context.Context) ([]domain.Country, error)
	ProvincesByCountryName(ctx context.Context, country string) ([]string, error)
	ProvincesByISO2(ctx context.Context, iso2 string) ([]string, error)
	ProvincesWithIDs(ctx context.Context, countryID int64) ([]domain.Province, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
}

type availabilityEntry struct {
	available bool
	expires   time.Time
}

// referenceService implements ReferenceService. Country and province lists
// are loaded once; availability answers are cached for a short TTL.
type referenceService struct {
	dbExecutor    repository.DBExecutor
	referenceRepo repository.ReferenceRepository
	userRepo      repository.UserRepository

	loadOnce  sync.Once
	loadErr   error
	countries []domain.Country
	provinces []domain.Province

	mu           sync.Mutex
	availability map[string]availabilityEntry
}

// NewReferenceService creates a new instance of ReferenceService.
func NewReferenceService(
	dbExecutor repository.DBExecutor,
	referenceRepo repository.ReferenceRepository,
	userRepo repository.UserRepository,
) ReferenceService {
	return &referenceService{
		dbExecutor:    dbExecutor,
		referenceRepo: referenceRepo,
		userRepo:      userRepo,
		availability:  make(map[string]availabilityEntry),
	}
}

func (s *referenceService) load(ctx context.Context) error {
	s.loadOnce.Do(func() {
		countries, err := s.referenceRepo.ListCountries(ctx, s.dbExecutor)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to load countries: %w", err)
			return
		}
		provinces, err := s.referenceRepo.ListProvinces(ctx, s.dbExecutor)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to load provinces: %w", err)
			return
		}
		s.countries = countries
		s.provinces = provinces
	})
	return s.loadErr
}

// Countries returns all country names.
func (s *referenceService) Countries(ctx context.Context) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.countries))
	for _, c := range s.countries {
		names = append(names, c.Name)
	}
	return names, nil
}

// CountriesWithIDs returns the full country catalog.
func (s *referenceService) CountriesWithIDs(ctx context.Context) ([]domain.Country, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s.countries, nil
}

// ProvincesByCountryName returns province names for a country matched
// case-insensitively by name.
func (s *referenceService) ProvincesByCountryName(ctx context.Context, country string) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	country = strings.ToLower(strings.TrimSpace(country))
	for _, c := range s.countries {
		if strings.ToLower(c.Name) == country {
			return s.provinceNames(c.ID), nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "El país indicado no existe.")
}

// ProvincesByISO2 returns province names for a country matched by ISO-3166-2
// code.
func (s *referenceService) ProvincesByISO2(ctx context.Context, iso2 string) ([]string, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	iso2 = strings.ToUpper(strings.TrimSpace(iso2))
	for _, c := range s.countries {
		if c.ISO2 == iso2 {
			return s.provinceNames(c.ID), nil
		}
	}
	return nil, apperr.New(apperr.CodeNotFound, "El país indicado no existe.")
}

// ProvincesWithIDs returns the province catalog for a country id.
func (s *referenceService) ProvincesWithIDs(ctx context.Context, countryID int64) ([]domain.Province, error) {
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	matched := []domain.Province{}
	for _, p := range s.provinces {
		if p.CountryID == countryID {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, "El país indicado no existe.")
	}
	return matched, nil
}

// EmailAvailable reports whether the email is free to register, with a short
// TTL cache.
func (s *referenceService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	email = validate.NormalizeEmail(email)
	if err := validate.Email(email); err != nil {
		return false, err
	}
	return s.availabilityOf(ctx, "email:"+email, func(ctx context.Context) (bool, error) {
		return s.userRepo.ExistsByEmail(ctx, s.dbExecutor, email)
	})
}

// UsernameAvailable reports whether the username is free to register, with a
// short TTL cache.
func (s *referenceService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	username = validate.NormalizeUsername(username)
	if err := validate.Username(username); err != nil {
		return false, err
	}
	return s.availabilityOf(ctx, "username:"+username, func(ctx context.Context) (bool, error) {
		return s.userRepo.ExistsByUsername(ctx, s.dbExecutor, username)
	})
}

func (s *referenceService) availabilityOf(ctx context.Context, key string, taken func(ctx context.Context) (bool, error)) (bool, error) {
	now := time.Now()

	s.mu.Lock()
	if entry, ok := s.availability[key]; ok && now.Before(entry.expires) {
		s.mu.Unlock()
		return entry.available, nil
	}
	s.mu.Unlock()

	exists, err := taken(ctx)
	if err != nil {
		return false, err
	}
	available := !exists

	s.mu.Lock()
	s.availability[key] = availabilityEntry{available: available, expires: now.Add(availabilityTTL)}
	s.mu.Unlock()

	return available, nil
}

func (s *referenceService) provinceNames(countryID int64) []string {
	names := []string{}
	for _, p := range s.provinces {
		if p.CountryID == countryID {
			names = append(names, p.Name)
		}
	}
	return names
}
