//go:build windows

package settings

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

const (
	userPath        = `SOFTWARE\CodingABI\abiSnip`
	policyPath      = `SOFTWARE\Policies\CodingABI\abiSnip`
	recommendedPath = policyPath + `\Recommended`
)

// registryStore reads the cascade from the Windows registry. Group
// policy writes the policy paths, group policy preferences the
// Recommended subkey.
type registryStore struct{}

// NewStore returns the registry-backed store.
func NewStore() Store { return registryStore{} }

func scopeKey(scope Scope) (registry.Key, string) {
	switch scope {
	case ScopePolicyUser:
		return registry.CURRENT_USER, policyPath
	case ScopePolicyMachine:
		return registry.LOCAL_MACHINE, policyPath
	case ScopeDefaultUser:
		return registry.CURRENT_USER, recommendedPath
	case ScopeDefaultMachine:
		return registry.LOCAL_MACHINE, recommendedPath
	default:
		return registry.CURRENT_USER, userPath
	}
}

func (registryStore) ReadInt(scope Scope, key string) (int64, bool) {
	root, path := scopeKey(scope)
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, false
	}
	defer k.Close()
	v, _, err := k.GetIntegerValue(key)
	if err != nil {
		return 0, false
	}
	return int64(v), true
}

func (registryStore) ReadString(scope Scope, key string) (string, bool) {
	root, path := scopeKey(scope)
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, _, err := k.GetStringValue(key)
	if err != nil {
		return "", false
	}
	return v, true
}

func openUserKey() (registry.Key, error) {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, userPath, registry.SET_VALUE)
	if err != nil {
		return 0, fmt.Errorf("open settings key: %w", err)
	}
	return k, nil
}

func (registryStore) WriteInt(key string, value int64) error {
	k, err := openUserKey()
	if err != nil {
		return err
	}
	defer k.Close()
	return k.SetDWordValue(key, uint32(value))
}

func (registryStore) WriteString(key, value string) error {
	k, err := openUserKey()
	if err != nil {
		return err
	}
	defer k.Close()
	return k.SetStringValue(key, value)
}

func (registryStore) Delete(key string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, userPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open settings key: %w", err)
	}
	defer k.Close()
	if err := k.DeleteValue(key); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return err
	}
	return nil
}
