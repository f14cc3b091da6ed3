package config

import (
	"errors"
	"fmt"

	supa "github.com/supabase-community/supabase-go"
)

// NewSupabaseClient initializes the Supabase client with the service key.
// The service key bypasses row-level security, so every query built on this
// client must filter on the caller's user_id.
func NewSupabaseClient(cfg *Config) (*supa.Client, error) {
	if cfg.Supabase.URL == "" || cfg.Supabase.ServiceKey == "" {
		return nil, errors.New("supabase url and service key are required")
	}
	client, err := supa.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, nil)
	if err != nil {
		return nil, fmt.Errorf("error initializing Supabase client: %w", err)
	}
	return client, nil
}
