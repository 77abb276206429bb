package services

import (
	"context"
	"errors"

	"boutique-backend/internal/auth"
	"boutique-backend/internal/models"
	"boutique-backend/internal/repositories"
)

// Processor credentials are long random strings; anything shorter is a
// paste error, not a key.
const minCredentialLength = 40

type ProcessorService struct {
	Repo *repositories.ProcessorRepository
	Box  *auth.SecretBox
}

func NewProcessorService(repo *repositories.ProcessorRepository, box *auth.SecretBox) *ProcessorService {
	return &ProcessorService{Repo: repo, Box: box}
}

// SaveCredentials validates and stores the payment processor keys, the
// secret encrypted at rest.
func (s *ProcessorService) SaveCredentials(ctx context.Context, systemID int, req *models.SaveProcessorCredentialsRequest) (*models.ProcessorCredentials, error) {
	if len(req.ClientKey) < minCredentialLength || len(req.ClientSecret) < minCredentialLength {
		return nil, errors.New("processor credentials look too short to be valid keys")
	}
	if s.Box == nil {
		return nil, errors.New("credential encryption not configured")
	}

	encrypted, err := s.Box.Encrypt(req.ClientSecret)
	if err != nil {
		return nil, err
	}

	creds := &models.ProcessorCredentials{
		SystemID:        systemID,
		ClientKey:       req.ClientKey,
		EncryptedSecret: encrypted,
	}
	if err := s.Repo.Save(ctx, creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// GetCredentials returns the stored keys with the secret decrypted, for
// internal use by the payment-link service only.
func (s *ProcessorService) GetCredentials(ctx context.Context, systemID int) (clientKey, clientSecret string, err error) {
	creds, err := s.Repo.GetBySystem(ctx, systemID)
	if err != nil {
		return "", "", errors.New("no processor credentials stored")
	}
	if s.Box == nil {
		return "", "", errors.New("credential encryption not configured")
	}

	secret, err := s.Box.Decrypt(creds.EncryptedSecret)
	if err != nil {
		return "", "", err
	}
	return creds.ClientKey, secret, nil
}

// HasCredentials reports whether keys are stored, without decrypting.
func (s *ProcessorService) HasCredentials(ctx context.Context, systemID int) bool {
	_, err := s.Repo.GetBySystem(ctx, systemID)
	return err == nil
}

func (s *ProcessorService) DeleteCredentials(ctx context.Context, systemID int) error {
	return s.Repo.Delete(ctx, systemID)
}
