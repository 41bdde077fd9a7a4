// Package memory provides an in-memory resource directory.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/louisbranch/chatguard/authz"
	"github.com/louisbranch/chatguard/store"
)

var (
	// ErrResourceIDRequired indicates a missing resource id.
	ErrResourceIDRequired = errors.New("resource id is required")
	// ErrResourceKindRequired indicates a missing resource kind.
	ErrResourceKindRequired = errors.New("resource kind is required")
)

// Memory stores resources in memory.
type Memory struct {
	mu        sync.RWMutex
	resources map[string]authz.Resource
}

// NewMemory creates a new in-memory resource directory.
func NewMemory() *Memory {
	return &Memory{
		resources: make(map[string]authz.Resource),
	}
}

// Put registers a resource for later lookup.
func (m *Memory) Put(ctx context.Context, resource authz.Resource) error {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	if m == nil {
		return errors.New("resource directory is required")
	}
	if resource.Kind == authz.ResourceKindUnspecified {
		return ErrResourceKindRequired
	}
	resource.ID = strings.TrimSpace(resource.ID)
	if resource.ID == "" {
		return ErrResourceIDRequired
	}
	resource.OwnerID = strings.TrimSpace(resource.OwnerID)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[resourceKey(resource.Kind, resource.ID)] = resource
	return nil
}

// GetResource retrieves a resource by kind and id.
func (m *Memory) GetResource(ctx context.Context, kind authz.ResourceKind, id string) (authz.Resource, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return authz.Resource{}, err
		}
	}
	if m == nil {
		return authz.Resource{}, errors.New("resource directory is required")
	}
	if kind == authz.ResourceKindUnspecified {
		return authz.Resource{}, ErrResourceKindRequired
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return authz.Resource{}, ErrResourceIDRequired
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	resource, ok := m.resources[resourceKey(kind, id)]
	if !ok {
		return authz.Resource{}, store.ErrNotFound
	}
	return resource, nil
}

func resourceKey(kind authz.ResourceKind, id string) string {
	return string(kind) + "/" + id
}
