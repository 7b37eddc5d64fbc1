package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetToken(host string, token string) error {
	return keyring.Set(k.serviceName, NormalizeHost(host), token)
}

func (k *KeyringStore) GetToken(host string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeHost(host))
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteToken(host string) error {
	err := keyring.Delete(k.serviceName, NormalizeHost(host))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}
